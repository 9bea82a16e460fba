package service

import (
	"context"
	"fmt"
	"time"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository"
)

type matchService struct {
	reqRepo     repository.MatchRequestRepository
	profileRepo repository.ProfileRepository
	eventRepo   repository.EventRepository
	teamRepo    repository.TeamRepository
	noteRepo    repository.NotificationRepository
	requestTTL  time.Duration
}

func NewMatchService(
	reqRepo repository.MatchRequestRepository,
	profileRepo repository.ProfileRepository,
	eventRepo repository.EventRepository,
	teamRepo repository.TeamRepository,
	noteRepo repository.NotificationRepository,
	requestTTL time.Duration,
) MatchService {
	return &matchService{
		reqRepo:     reqRepo,
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
		teamRepo:    teamRepo,
		noteRepo:    noteRepo,
		requestTTL:  requestTTL,
	}
}

func (s *matchService) SendMatchRequest(ctx context.Context, requesterID, recipientID, eventID int32, teamID *int32, message string) (*domain.MatchRequest, error) {
	if requesterID == recipientID {
		return nil, domain.ErrSelfRequest
	}

	requester, err := s.profileRepo.GetByUserID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.profileRepo.GetByUserID(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if !recipient.AllowMatching {
		return nil, domain.ErrMatchingDisabled
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	reqType := domain.MatchRequestTypeDirect
	if teamID != nil {
		team, err := s.teamRepo.GetByID(ctx, *teamID)
		if err != nil {
			return nil, err
		}
		if team.LeaderID != requesterID {
			return nil, domain.ErrNotLeader
		}
		if team.EventID != eventID {
			return nil, domain.ErrTeamEventMismatch
		}
		reqType = domain.MatchRequestTypeTeamInvite
	}

	// Score is snapshotted here and stays fixed for the life of the request.
	breakdown := CompatibilityScore(requester, recipient)
	now := time.Now().UTC()
	req := &domain.MatchRequest{
		RequesterID:  requesterID,
		RecipientID:  recipientID,
		EventID:      eventID,
		TeamID:       teamID,
		Type:         reqType,
		Status:       domain.MatchRequestStatusPending,
		Score:        breakdown.Total,
		ScoreDetails: breakdown,
		Message:      message,
		CreatedOn:    now,
		ExpiresOn:    now.Add(s.requestTTL),
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  recipientID,
		Title:   "New Match Request",
		Message: fmt.Sprintf("%s wants to team up with you", requester.Name),
		Attributes: map[string]string{
			"type":       "MATCH_REQUEST",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	})

	return req, nil
}

func (s *matchService) RespondToRequest(ctx context.Context, requestID, actingUserID int32, decision domain.MatchDecision) (*domain.MatchRequest, *domain.Team, error) {
	if decision != domain.MatchDecisionAccept && decision != domain.MatchDecisionReject {
		return nil, nil, domain.ErrInvalidDecision
	}

	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if req.RecipientID != actingUserID {
		return nil, nil, domain.ErrNotRecipient
	}
	if req.Resolved() {
		return nil, nil, domain.ErrRequestResolved
	}

	now := time.Now().UTC()

	if decision == domain.MatchDecisionAccept && req.Type == domain.MatchRequestTypeTeamInvite && req.TeamID != nil {
		// Accept and join are one unit: if the team cannot take the user the
		// error propagates and the request is still pending.
		req, team, err := s.reqRepo.AcceptWithTeamJoin(ctx, requestID, *req.TeamID, actingUserID, now)
		if err != nil {
			return nil, nil, err
		}
		s.notifyResponse(ctx, req, decision)
		return req, team, nil
	}

	status := domain.MatchRequestStatusRejected
	if decision == domain.MatchDecisionAccept {
		status = domain.MatchRequestStatusAccepted
	}
	if err := s.reqRepo.Resolve(ctx, requestID, status, now); err != nil {
		return nil, nil, err
	}
	req.Status = status
	req.RespondedOn = &now
	s.notifyResponse(ctx, req, decision)
	return req, nil, nil
}

func (s *matchService) notifyResponse(ctx context.Context, req *domain.MatchRequest, decision domain.MatchDecision) {
	title := "Match Request Accepted"
	if decision == domain.MatchDecisionReject {
		title = "Match Request Declined"
	}
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  req.RequesterID,
		Title:   title,
		Message: fmt.Sprintf("Your match request was %sed", decision),
		Attributes: map[string]string{
			"type":       "MATCH_RESPONSE",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	})
}

func (s *matchService) CancelRequest(ctx context.Context, requestID, actingUserID int32) (*domain.MatchRequest, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != actingUserID {
		return nil, domain.ErrNotRequester
	}
	if req.Resolved() {
		return nil, domain.ErrRequestResolved
	}

	now := time.Now().UTC()
	if err := s.reqRepo.Resolve(ctx, requestID, domain.MatchRequestStatusCancelled, now); err != nil {
		return nil, err
	}
	req.Status = domain.MatchRequestStatusCancelled
	req.RespondedOn = &now
	return req, nil
}

func (s *matchService) ListRequests(ctx context.Context, userID int32, direction string, status domain.MatchRequestStatus) ([]domain.MatchRequest, error) {
	return s.reqRepo.ListByUser(ctx, userID, direction, status)
}

func (s *matchService) MutualMatches(ctx context.Context, userID int32) ([]domain.MutualMatch, error) {
	return s.reqRepo.FindMutual(ctx, userID)
}

func (s *matchService) RequestStats(ctx context.Context, userID int32) (*domain.RequestStats, error) {
	sent, received, err := s.reqRepo.StatusCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count match requests: %w", err)
	}
	stats := &domain.RequestStats{Sent: sent, Received: received}
	if sent.Total > 0 {
		stats.SentSuccessRate = sent.Accepted * 100 / sent.Total
	}
	if received.Total > 0 {
		stats.ReceivedAcceptRate = received.Accepted * 100 / received.Total
	}
	return stats, nil
}
