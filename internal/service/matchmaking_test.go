package service_test

import (
	"context"
	"testing"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestMatchmakingService_FindCandidates(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	eventRepo := new(MockEventRepo)
	svc := service.NewMatchmakingService(profileRepo, eventRepo)
	ctx := context.Background()

	me := &domain.Profile{UserID: 1, Skills: []string{"go", "react"}, AllowMatching: true}
	others := []domain.Profile{
		{UserID: 2, Skills: []string{"go"}, AllowMatching: true},          // 50
		{UserID: 3, Skills: []string{"go", "react"}, AllowMatching: true}, // 100
		{UserID: 4, Skills: []string{"rust"}, AllowMatching: true},        // 0
	}
	profileRepo.On("GetByUserID", ctx, int32(1)).Return(me, nil)
	eventRepo.On("GetByID", ctx, int32(10)).Return(&domain.Event{ID: 10}, nil)
	profileRepo.On("ListMatchable", ctx, int32(1)).Return(others, nil)

	candidates, err := svc.FindCandidates(ctx, 1, 10, 50, 10)
	assert.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, int32(3), candidates[0].Profile.UserID)
	assert.Equal(t, 100.0, candidates[0].Score)
	assert.Equal(t, int32(2), candidates[1].Profile.UserID)
	assert.Equal(t, 50.0, candidates[1].Score)
	profileRepo.AssertExpectations(t)
}

func TestMatchmakingService_FindCandidates_Limit(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	eventRepo := new(MockEventRepo)
	svc := service.NewMatchmakingService(profileRepo, eventRepo)
	ctx := context.Background()

	me := &domain.Profile{UserID: 1, Skills: []string{"go"}, AllowMatching: true}
	others := []domain.Profile{
		{UserID: 2, Skills: []string{"go"}, AllowMatching: true},
		{UserID: 3, Skills: []string{"go"}, AllowMatching: true},
	}
	profileRepo.On("GetByUserID", ctx, int32(1)).Return(me, nil)
	eventRepo.On("GetByID", ctx, int32(10)).Return(&domain.Event{ID: 10}, nil)
	profileRepo.On("ListMatchable", ctx, int32(1)).Return(others, nil)

	candidates, err := svc.FindCandidates(ctx, 1, 10, 0, 1)
	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	// Equal scores rank by user ID for a stable ordering.
	assert.Equal(t, int32(2), candidates[0].Profile.UserID)
}

func TestMatchmakingService_FindCandidates_UnknownEvent(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	eventRepo := new(MockEventRepo)
	svc := service.NewMatchmakingService(profileRepo, eventRepo)
	ctx := context.Background()

	profileRepo.On("GetByUserID", ctx, int32(1)).Return(&domain.Profile{UserID: 1}, nil)
	eventRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.NewNotFoundError("event"))

	_, err := svc.FindCandidates(ctx, 1, 99, 0, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
