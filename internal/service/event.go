package service

import (
	"context"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository"
)

type EventService interface {
	GetEvent(ctx context.Context, eventID int32) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) GetEvent(ctx context.Context, eventID int32) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.List(ctx)
}
