package service_test

import (
	"testing"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func tier(t domain.ExperienceTier) *domain.ExperienceTier {
	return &t
}

func TestCompatibilityScore_IdenticalProfiles(t *testing.T) {
	p := &domain.Profile{
		UserID:         1,
		Skills:         []string{"go", "react", "postgres"},
		ExperienceTier: tier(domain.TierMid),
		Traits: &domain.PersonalityTraits{
			Leadership:    0.8,
			Collaboration: 0.6,
			Innovation:    0.7,
			Technical:     0.9,
			Communication: 0.5,
		},
	}
	bd := service.CompatibilityScore(p, p)
	assert.Equal(t, 100.0, bd.Total)
	assert.Len(t, bd.Components, 3)
}

func TestCompatibilityScore_Symmetric(t *testing.T) {
	a := &domain.Profile{
		UserID:         1,
		Skills:         []string{"go", "react", "postgres"},
		ExperienceTier: tier(domain.TierMid),
		Traits:         &domain.PersonalityTraits{Leadership: 0.8, Collaboration: 0.6, Innovation: 0.7, Technical: 0.9, Communication: 0.5},
	}
	b := &domain.Profile{
		UserID:         2,
		Skills:         []string{"go", "python", "react"},
		ExperienceTier: tier(domain.TierSenior),
		Traits:         &domain.PersonalityTraits{Leadership: 0.6, Collaboration: 0.8, Innovation: 0.7, Technical: 0.7, Communication: 0.7},
	}
	assert.Equal(t, service.CompatibilityScore(a, b).Total, service.CompatibilityScore(b, a).Total)
}

func TestCompatibilityScore_WorkedExample(t *testing.T) {
	// Skills: 2 shared of 4 distinct -> 20 of 40.
	// Tiers differ -> 14 of 20.
	// Traits: avg affinity 0.84 -> 33.6 of 40.
	a := &domain.Profile{
		UserID:         1,
		Skills:         []string{"Go", "React", "Postgres"},
		ExperienceTier: tier(domain.TierMid),
		Traits:         &domain.PersonalityTraits{Leadership: 0.8, Collaboration: 0.6, Innovation: 0.7, Technical: 0.9, Communication: 0.5},
	}
	b := &domain.Profile{
		UserID:         2,
		Skills:         []string{"go", "python", "react"},
		ExperienceTier: tier(domain.TierSenior),
		Traits:         &domain.PersonalityTraits{Leadership: 0.6, Collaboration: 0.8, Innovation: 0.7, Technical: 0.7, Communication: 0.7},
	}
	bd := service.CompatibilityScore(a, b)
	assert.InDelta(t, 67.6, bd.Total, 0.01)
	assert.InDelta(t, 67.6, bd.AchievedPoints, 0.01)
	assert.Equal(t, 100.0, bd.ApplicablePoints)
}

func TestCompatibilityScore_PartialOverlapSameTier(t *testing.T) {
	// Skills: 1 shared of 3 distinct -> 13.33 of 40.
	// Same tier -> 20 of 20. Identical traits -> 40 of 40.
	traits := &domain.PersonalityTraits{Leadership: 0.5, Collaboration: 0.5, Innovation: 0.5, Technical: 0.5, Communication: 0.5}
	a := &domain.Profile{UserID: 1, Skills: []string{"React", "Node"}, ExperienceTier: tier(domain.TierMid), Traits: traits}
	b := &domain.Profile{UserID: 2, Skills: []string{"React", "Python"}, ExperienceTier: tier(domain.TierMid), Traits: traits}

	bd := service.CompatibilityScore(a, b)
	assert.InDelta(t, 73.3, bd.Total, 0.01)
}

func TestCompatibilityScore_MissingTierExcludedFromDenominator(t *testing.T) {
	traits := &domain.PersonalityTraits{Leadership: 0.5, Collaboration: 0.5, Innovation: 0.5, Technical: 0.5, Communication: 0.5}
	a := &domain.Profile{UserID: 1, Skills: []string{"go"}, Traits: traits}
	b := &domain.Profile{UserID: 2, Skills: []string{"go"}, ExperienceTier: tier(domain.TierLead), Traits: traits}

	bd := service.CompatibilityScore(a, b)
	assert.Equal(t, 80.0, bd.ApplicablePoints)
	assert.Equal(t, 100.0, bd.Total)
	assert.Len(t, bd.Components, 2)
}

func TestCompatibilityScore_MissingTraitsExcludedFromDenominator(t *testing.T) {
	a := &domain.Profile{UserID: 1, Skills: []string{"go"}, ExperienceTier: tier(domain.TierMid)}
	b := &domain.Profile{UserID: 2, Skills: []string{"go"}, ExperienceTier: tier(domain.TierMid), Traits: &domain.PersonalityTraits{}}

	bd := service.CompatibilityScore(a, b)
	assert.Equal(t, 60.0, bd.ApplicablePoints)
	assert.Equal(t, 100.0, bd.Total)
}

func TestCompatibilityScore_NoSkillsEitherSide(t *testing.T) {
	a := &domain.Profile{UserID: 1}
	b := &domain.Profile{UserID: 2}

	bd := service.CompatibilityScore(a, b)
	assert.Equal(t, 0.0, bd.Total)
	assert.Equal(t, 40.0, bd.ApplicablePoints)
}

func TestCompatibilityScore_ExactSkillMatchingOnly(t *testing.T) {
	a := &domain.Profile{UserID: 1, Skills: []string{"java"}}
	b := &domain.Profile{UserID: 2, Skills: []string{"javascript"}}

	bd := service.CompatibilityScore(a, b)
	assert.Equal(t, 0.0, bd.Total)
}

func TestCompatibilityScore_SkillsCaseAndWhitespaceInsensitive(t *testing.T) {
	a := &domain.Profile{UserID: 1, Skills: []string{" Go ", "REACT"}}
	b := &domain.Profile{UserID: 2, Skills: []string{"go", "react"}}

	bd := service.CompatibilityScore(a, b)
	assert.Equal(t, 100.0, bd.Total)
}

func TestCompatibilityScore_WithinRange(t *testing.T) {
	profiles := []*domain.Profile{
		{UserID: 1},
		{UserID: 2, Skills: []string{"go"}},
		{UserID: 3, Skills: []string{"rust", "c"}, ExperienceTier: tier(domain.TierStudent)},
		{UserID: 4, Skills: []string{"go", "rust"}, ExperienceTier: tier(domain.TierLead), Traits: &domain.PersonalityTraits{Leadership: 1, Technical: 1}},
	}
	for _, a := range profiles {
		for _, b := range profiles {
			bd := service.CompatibilityScore(a, b)
			assert.GreaterOrEqual(t, bd.Total, 0.0)
			assert.LessOrEqual(t, bd.Total, 100.0)
		}
	}
}
