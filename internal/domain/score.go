package domain

// ScoreComponent is one evaluated sub-term of a compatibility score.
type ScoreComponent struct {
	Name      string  `json:"name"`
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"max_points"`
}

// ScoreBreakdown explains a compatibility score: every applicable sub-term
// with its raw contribution. Terms that could not be evaluated (missing tier,
// missing trait vector) are absent rather than zeroed, so ApplicablePoints
// varies between profile pairs.
type ScoreBreakdown struct {
	Components       []ScoreComponent `json:"components"`
	AchievedPoints   float64          `json:"achieved_points"`
	ApplicablePoints float64          `json:"applicable_points"`
	Total            float64          `json:"total"`
}
