package postgres

import (
	"database/sql"

	"hackmate-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.EventRepository
	repository.MatchRequestRepository
	repository.TeamRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ProfileRepository:      NewProfileRepository(db),
		EventRepository:        NewEventRepository(db),
		MatchRequestRepository: NewMatchRequestRepository(db),
		TeamRepository:         NewTeamRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
