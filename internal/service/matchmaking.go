package service

import (
	"context"
	"fmt"
	"sort"

	"hackmate-backend/internal/repository"
)

type matchmakingService struct {
	profileRepo repository.ProfileRepository
	eventRepo   repository.EventRepository
}

func NewMatchmakingService(profileRepo repository.ProfileRepository, eventRepo repository.EventRepository) MatchmakingService {
	return &matchmakingService{
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
	}
}

// FindCandidates ranks everyone the caller could team up with for an event.
// Full scan of matchable profiles plus a sort; fine at the current population
// and the obvious place to shard or index if that ever stops being true.
func (s *matchmakingService) FindCandidates(ctx context.Context, userID, eventID int32, minScore float64, limit int32) ([]Candidate, error) {
	me, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.ListMatchable(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchable profiles: %w", err)
	}

	candidates := make([]Candidate, 0, len(profiles))
	for i := range profiles {
		bd := CompatibilityScore(me, &profiles[i])
		if bd.Total < minScore {
			continue
		}
		candidates = append(candidates, Candidate{
			Profile:   profiles[i],
			Score:     bd.Total,
			Breakdown: bd,
		})
	}

	// Descending by score; equal scores order by user ID so rankings are
	// stable between calls.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Profile.UserID < candidates[j].Profile.UserID
	})

	if limit > 0 && int32(len(candidates)) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
