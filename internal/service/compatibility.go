package service

import (
	"math"
	"strings"

	"hackmate-backend/internal/domain"
)

// Compatibility scoring weights. The three terms sum to 100 when all are
// applicable; missing data shrinks the applicable total instead of counting
// as zero, so scores stay comparable across partially filled profiles.
const (
	skillWeight = 40.0
	tierWeight  = 20.0
	traitWeight = 40.0

	// Different tiers still earn partial credit; same tier is always the max.
	tierPartialCredit = 0.7
)

// CompatibilityScore rates how well two profiles fit on a 0-100 scale.
// Deterministic, no I/O, and total for any pair of profiles: missing
// sub-scores degrade the breakdown, never fail it.
func CompatibilityScore(a, b *domain.Profile) domain.ScoreBreakdown {
	var bd domain.ScoreBreakdown

	// Skill overlap. Exact matching on normalized names; no substring
	// matching, so "java" never matches inside "javascript".
	skillsA := normalizeSkills(a.Skills)
	skillsB := normalizeSkills(b.Skills)
	intersection := 0
	for s := range skillsA {
		if _, ok := skillsB[s]; ok {
			intersection++
		}
	}
	union := len(skillsA) + len(skillsB) - intersection
	ratio := float64(intersection) / math.Max(float64(union), 1)
	addComponent(&bd, "skill_overlap", ratio*skillWeight, skillWeight)

	// Experience tier proximity. Same tier is a full match; any difference
	// earns the fixed partial credit. Absent tiers exclude the term.
	if a.ExperienceTier != nil && b.ExperienceTier != nil {
		points := tierPartialCredit * tierWeight
		if *a.ExperienceTier == *b.ExperienceTier {
			points = tierWeight
		}
		addComponent(&bd, "experience_tier", points, tierWeight)
	}

	// Personality trait affinity, only when both sides carry a vector.
	if a.Traits != nil && b.Traits != nil {
		diffs := []float64{
			math.Abs(a.Traits.Leadership - b.Traits.Leadership),
			math.Abs(a.Traits.Collaboration - b.Traits.Collaboration),
			math.Abs(a.Traits.Innovation - b.Traits.Innovation),
			math.Abs(a.Traits.Technical - b.Traits.Technical),
			math.Abs(a.Traits.Communication - b.Traits.Communication),
		}
		affinity := 0.0
		for _, d := range diffs {
			affinity += 1 - d
		}
		affinity /= float64(len(diffs))
		addComponent(&bd, "trait_affinity", affinity*traitWeight, traitWeight)
	}

	if bd.ApplicablePoints > 0 {
		bd.Total = round1(bd.AchievedPoints / bd.ApplicablePoints * 100)
	}
	return bd
}

func addComponent(bd *domain.ScoreBreakdown, name string, points, maxPoints float64) {
	bd.Components = append(bd.Components, domain.ScoreComponent{
		Name:      name,
		Points:    round1(points),
		MaxPoints: maxPoints,
	})
	bd.AchievedPoints += points
	bd.ApplicablePoints += maxPoints
}

func normalizeSkills(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
