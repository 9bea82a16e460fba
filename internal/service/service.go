package service

import (
	"context"

	"hackmate-backend/internal/domain"
)

// Candidate is a ranked matchmaking candidate: a profile with the score the
// caller would get against it.
type Candidate struct {
	Profile   domain.Profile        `json:"profile"`
	Score     float64               `json:"score"`
	Breakdown domain.ScoreBreakdown `json:"breakdown"`
}

type MatchmakingService interface {
	FindCandidates(ctx context.Context, userID, eventID int32, minScore float64, limit int32) ([]Candidate, error)
}

type MatchService interface {
	SendMatchRequest(ctx context.Context, requesterID, recipientID, eventID int32, teamID *int32, message string) (*domain.MatchRequest, error)
	// RespondToRequest returns the team alongside the request when an
	// accepted team invite resulted in a join.
	RespondToRequest(ctx context.Context, requestID, actingUserID int32, decision domain.MatchDecision) (*domain.MatchRequest, *domain.Team, error)
	CancelRequest(ctx context.Context, requestID, actingUserID int32) (*domain.MatchRequest, error)
	ListRequests(ctx context.Context, userID int32, direction string, status domain.MatchRequestStatus) ([]domain.MatchRequest, error)
	MutualMatches(ctx context.Context, userID int32) ([]domain.MutualMatch, error)
	RequestStats(ctx context.Context, userID int32) (*domain.RequestStats, error)
}

// TeamPatch carries a leader's partial team update; nil fields are untouched.
type TeamPatch struct {
	Name        *string
	Description *string
	TechStack   []string
	MaxMembers  *int32
}

type TeamService interface {
	CreateTeam(ctx context.Context, leaderID, eventID int32, name, description string, techStack []string, maxMembers int32) (*domain.Team, error)
	GetTeam(ctx context.Context, teamID int32) (*domain.Team, error)
	JoinTeam(ctx context.Context, teamID, userID int32, role string) (*domain.Team, error)
	JoinByInviteCode(ctx context.Context, code string, userID int32, role string) (*domain.Team, error)
	LeaveTeam(ctx context.Context, teamID, userID int32) (*domain.Team, error)
	UpdateTeam(ctx context.Context, teamID, actingUserID int32, patch TeamPatch) (*domain.Team, error)
	RemoveMember(ctx context.Context, teamID, actingUserID, targetUserID int32) (*domain.Team, error)
	ListTeamsByEvent(ctx context.Context, eventID int32, status domain.TeamStatus, search string) ([]domain.Team, error)
	MyTeams(ctx context.Context, userID int32) ([]domain.Team, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}
