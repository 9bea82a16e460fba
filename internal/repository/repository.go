package repository

import (
	"context"
	"time"

	"hackmate-backend/internal/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int32) (*domain.Profile, error)
	// ListMatchable returns profiles eligible for candidate ranking: everyone
	// except excludeUserID who has matching enabled.
	ListMatchable(ctx context.Context, excludeUserID int32) ([]domain.Profile, error)
}

type EventRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}

type MatchRequestRepository interface {
	// Create persists a pending request with its score snapshot. A concurrent
	// pending request for the same (requester, recipient, event) triple is
	// rejected with domain.ErrDuplicateActiveRequest.
	Create(ctx context.Context, req *domain.MatchRequest) error
	GetByID(ctx context.Context, id int32) (*domain.MatchRequest, error)
	// Resolve moves a pending request to a terminal status. It fails with
	// domain.ErrRequestResolved if the request already left PENDING.
	Resolve(ctx context.Context, id int32, status domain.MatchRequestStatus, respondedOn time.Time) error
	// AcceptWithTeamJoin atomically accepts a team-invite request and adds the
	// recipient to the team. If the join cannot happen (full, closed, already
	// on a team) nothing changes and the request stays pending.
	AcceptWithTeamJoin(ctx context.Context, requestID, teamID, userID int32, respondedOn time.Time) (*domain.MatchRequest, *domain.Team, error)
	ListByUser(ctx context.Context, userID int32, direction string, status domain.MatchRequestStatus) ([]domain.MatchRequest, error)
	FindMutual(ctx context.Context, userID int32) ([]domain.MutualMatch, error)
	StatusCounts(ctx context.Context, userID int32) (sent, received domain.RequestCounts, err error)
	// CancelExpired cancels pending requests whose expiry has passed and
	// returns how many were affected.
	CancelExpired(ctx context.Context, now time.Time) (int64, error)
}

type TeamRepository interface {
	// Create inserts the team with the leader as its first member, failing
	// with domain.ErrAlreadyOnTeam if the leader already has a non-terminal
	// team for the event.
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id int32) (*domain.Team, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.Team, error)
	// AddMember performs the capacity check and the membership insert as one
	// indivisible unit per team.
	AddMember(ctx context.Context, teamID, userID int32, role string) (*domain.Team, error)
	// RemoveMember removes targetUserID, transferring leadership to the
	// earliest remaining member when the leader leaves, and disbanding the
	// team when the last member leaves. A removal by someone else (acting !=
	// target) is re-authorized against leader_id under the row lock, so a
	// concurrent leadership transfer cannot let a stale leader kick.
	RemoveMember(ctx context.Context, teamID, actingUserID, targetUserID int32) (*domain.Team, error)
	// UpdateCapacity changes maxMembers, failing with
	// domain.ErrCapacityBelowSize if the new capacity is below the current
	// member count at the time of the update.
	UpdateCapacity(ctx context.Context, teamID, newMax int32) (*domain.Team, error)
	UpdateInfo(ctx context.Context, team *domain.Team) error
	ListByEvent(ctx context.Context, eventID int32, status domain.TeamStatus, search string) ([]domain.Team, error)
	ListByMember(ctx context.Context, userID int32) ([]domain.Team, error)
	// GetActiveForUser returns the user's non-terminal team for the event, or
	// (nil, nil) when there is none.
	GetActiveForUser(ctx context.Context, eventID, userID int32) (*domain.Team, error)
	// CompleteForEndedEvents marks non-terminal teams of ended events as
	// completed and returns how many were affected.
	CompleteForEndedEvents(ctx context.Context, now time.Time) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
