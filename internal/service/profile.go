package service

import (
	"context"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID int32) (*domain.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}
