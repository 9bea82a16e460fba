package domain

import "time"

// Event is a competitive event (hackathon). Event catalog management lives
// outside this service; the engine only reads team-size bounds and dates.
type Event struct {
	ID                   int32     `json:"id"`
	Title                string    `json:"title"`
	MinTeamSize          int32     `json:"min_team_size"`
	MaxTeamSize          int32     `json:"max_team_size"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
}
