package service

import (
	"context"
	"fmt"
	"time"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository"

	"github.com/google/uuid"
)

type teamService struct {
	teamRepo  repository.TeamRepository
	eventRepo repository.EventRepository
	noteRepo  repository.NotificationRepository
}

func NewTeamService(
	teamRepo repository.TeamRepository,
	eventRepo repository.EventRepository,
	noteRepo repository.NotificationRepository,
) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		eventRepo: eventRepo,
		noteRepo:  noteRepo,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, leaderID, eventID int32, name, description string, techStack []string, maxMembers int32) (*domain.Team, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if maxMembers < event.MinTeamSize || maxMembers > event.MaxTeamSize {
		return nil, domain.ErrInvalidTeamSize
	}

	now := time.Now().UTC()
	team := &domain.Team{
		EventID:     eventID,
		Name:        name,
		Description: description,
		LeaderID:    leaderID,
		MaxMembers:  maxMembers,
		TechStack:   techStack,
		Status:      domain.TeamStatusForming,
		InviteCode:  uuid.NewString(),
		CreatedOn:   now,
		UpdatedOn:   now,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, teamID int32) (*domain.Team, error) {
	return s.teamRepo.GetByID(ctx, teamID)
}

func (s *teamService) JoinTeam(ctx context.Context, teamID, userID int32, role string) (*domain.Team, error) {
	team, err := s.teamRepo.AddMember(ctx, teamID, userID, role)
	if err != nil {
		return nil, err
	}
	s.notifyLeader(ctx, team, "Member Joined", fmt.Sprintf("A new member joined %s", team.Name), userID)
	return team, nil
}

func (s *teamService) JoinByInviteCode(ctx context.Context, code string, userID int32, role string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.JoinTeam(ctx, team.ID, userID, role)
}

func (s *teamService) LeaveTeam(ctx context.Context, teamID, userID int32) (*domain.Team, error) {
	team, err := s.teamRepo.RemoveMember(ctx, teamID, userID, userID)
	if err != nil {
		return nil, err
	}
	if team.Status != domain.TeamStatusDisbanded {
		s.notifyLeader(ctx, team, "Member Left", fmt.Sprintf("A member left %s", team.Name), userID)
	}
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, teamID, actingUserID int32, patch TeamPatch) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.LeaderID != actingUserID {
		return nil, domain.ErrNotLeader
	}

	if patch.MaxMembers != nil {
		if team, err = s.teamRepo.UpdateCapacity(ctx, teamID, *patch.MaxMembers); err != nil {
			return nil, err
		}
	}

	changed := false
	if patch.Name != nil {
		team.Name = *patch.Name
		changed = true
	}
	if patch.Description != nil {
		team.Description = *patch.Description
		changed = true
	}
	if patch.TechStack != nil {
		team.TechStack = patch.TechStack
		changed = true
	}
	if changed {
		if err := s.teamRepo.UpdateInfo(ctx, team); err != nil {
			return nil, err
		}
	}
	return s.teamRepo.GetByID(ctx, teamID)
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, actingUserID, targetUserID int32) (*domain.Team, error) {
	// Cheap pre-checks for a clean error; the repository re-authorizes
	// against the row-locked leader_id, which is the one that binds.
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.LeaderID != actingUserID {
		return nil, domain.ErrNotLeader
	}
	if targetUserID == team.LeaderID {
		return nil, domain.ErrCannotRemoveLeader
	}

	team, err = s.teamRepo.RemoveMember(ctx, teamID, actingUserID, targetUserID)
	if err != nil {
		return nil, err
	}

	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  targetUserID,
		Title:   "Removed From Team",
		Message: fmt.Sprintf("You were removed from %s", team.Name),
		Attributes: map[string]string{
			"type":    "TEAM_REMOVAL",
			"team_id": fmt.Sprintf("%d", team.ID),
		},
	})
	return team, nil
}

func (s *teamService) ListTeamsByEvent(ctx context.Context, eventID int32, status domain.TeamStatus, search string) ([]domain.Team, error) {
	return s.teamRepo.ListByEvent(ctx, eventID, status, search)
}

func (s *teamService) MyTeams(ctx context.Context, userID int32) ([]domain.Team, error) {
	return s.teamRepo.ListByMember(ctx, userID)
}

func (s *teamService) notifyLeader(ctx context.Context, team *domain.Team, title, message string, aboutUserID int32) {
	if team.LeaderID == aboutUserID {
		return
	}
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  team.LeaderID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":    "TEAM_MEMBERSHIP",
			"team_id": fmt.Sprintf("%d", team.ID),
			"user_id": fmt.Sprintf("%d", aboutUserID),
		},
	})
}
