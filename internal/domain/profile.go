package domain

import "time"

type ExperienceTier string

const (
	TierStudent ExperienceTier = "STUDENT"
	TierJunior  ExperienceTier = "JUNIOR"
	TierMid     ExperienceTier = "MID"
	TierSenior  ExperienceTier = "SENIOR"
	TierLead    ExperienceTier = "LEAD"
)

// PersonalityTraits holds the five trait scalars, each in [0, 1].
type PersonalityTraits struct {
	Leadership    float64 `json:"leadership"`
	Collaboration float64 `json:"collaboration"`
	Innovation    float64 `json:"innovation"`
	Technical     float64 `json:"technical"`
	Communication float64 `json:"communication"`
}

// Profile is a participant profile. It is owned by the participant and
// read-only to the matchmaking engine; pointer fields model data that may
// simply not exist yet (tier unassessed, traits not derived).
type Profile struct {
	UserID            int32              `json:"user_id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Skills            []string           `json:"skills"`
	ExperienceTier    *ExperienceTier    `json:"experience_tier,omitempty"`
	Traits            *PersonalityTraits `json:"traits,omitempty"`
	AllowMatching     bool               `json:"allow_matching"`
	PreferredTeamSize int32              `json:"preferred_team_size"`
	CreatedOn         time.Time          `json:"created_on"`
	UpdatedOn         time.Time          `json:"updated_on"`
}
