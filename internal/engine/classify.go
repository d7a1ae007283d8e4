// internal/engine/classify.go
package engine

import (
	"sort"

	"advisor-workers/internal/models"
)

// tierCap limits how many universities each tier may hold.
const tierCap = 5

// ClassifyAndCap scores every candidate, orders them by score descending
// (stable, so ties keep input order), assigns each to a tier and caps each
// tier at five entries. Overflow beyond the cap is dropped, never moved to
// another tier. Empty input yields three empty slices.
func ClassifyAndCap(candidates []models.University, gpa float64, budget int) models.CategorizedUniversities {
	result := models.CategorizedUniversities{
		Reach:  []models.RecommendedUniversity{},
		Target: []models.RecommendedUniversity{},
		Safe:   []models.RecommendedUniversity{},
	}
	if len(candidates) == 0 {
		return result
	}

	scored := make([]models.RecommendedUniversity, 0, len(candidates))
	for _, u := range candidates {
		score := ScoreUniversity(u, gpa, budget)
		scored = append(scored, models.RecommendedUniversity{
			University:      u,
			FitScore:        score,
			MatchPercentage: score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FitScore > scored[j].FitScore
	})

	for i := range scored {
		tier := classifyTier(scored[i].University)
		scored[i].Tier = tier

		switch tier {
		case models.TierReach:
			if len(result.Reach) < tierCap {
				result.Reach = append(result.Reach, scored[i])
			}
		case models.TierSafe:
			if len(result.Safe) < tierCap {
				result.Safe = append(result.Safe, scored[i])
			}
		default:
			if len(result.Target) < tierCap {
				result.Target = append(result.Target, scored[i])
			}
		}
	}

	return result
}

// classifyTier applies the tier rules in priority order. Rank and
// competitiveness decide the tier; the fit score only decides ordering.
func classifyTier(u models.University) models.Tier {
	rank := unrankedRank
	if u.Rank != nil {
		rank = *u.Rank
	}
	comp := u.Competitiveness

	switch {
	case rank <= 50 && comp == models.CompetitivenessHigh:
		return models.TierReach
	case rank > 100 || comp == models.CompetitivenessLow || comp == models.CompetitivenessVeryLow:
		return models.TierSafe
	case rank <= 100 && (comp == models.CompetitivenessHigh || comp == models.CompetitivenessMedium):
		return models.TierTarget
	default:
		return models.TierTarget
	}
}
