package postgres

import (
	"context"
	"database/sql"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, min_team_size, max_team_size, registration_deadline, start_date, end_date`

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	e := &domain.Event{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Title, &e.MinTeamSize, &e.MaxTeamSize,
		&e.RegistrationDeadline, &e.StartDate, &e.EndDate)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("event")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.MinTeamSize, &e.MaxTeamSize,
			&e.RegistrationDeadline, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
