package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository"

	"github.com/lib/pq"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `user_id, name, email, skills, experience_tier, traits, allow_matching, preferred_team_size, created_on, updated_on`

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	p := &domain.Profile{}
	var tier sql.NullString
	var traitsRaw []byte
	err := row.Scan(&p.UserID, &p.Name, &p.Email, pq.Array(&p.Skills), &tier, &traitsRaw,
		&p.AllowMatching, &p.PreferredTeamSize, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if tier.Valid {
		t := domain.ExperienceTier(tier.String)
		p.ExperienceTier = &t
	}
	if len(traitsRaw) > 0 {
		var traits domain.PersonalityTraits
		if err := json.Unmarshal(traitsRaw, &traits); err != nil {
			return nil, fmt.Errorf("failed to decode traits: %w", err)
		}
		p.Traits = &traits
	}
	return p, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int32) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("profile")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) ListMatchable(ctx context.Context, excludeUserID int32) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id <> $1 AND allow_matching`
	rows, err := r.db.QueryContext(ctx, query, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}
