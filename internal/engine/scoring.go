// internal/engine/scoring.go
package engine

import "advisor-workers/internal/models"

// unrankedRank is the effective rank assigned to universities without one.
const unrankedRank = 500

// ScoreUniversity computes the deterministic fit score in [0,100] for one
// university against a student's GPA and yearly budget. Three additive
// components: prestige (max 40), cost fit (max 30), academic fit (max 30).
func ScoreUniversity(u models.University, gpa float64, budget int) int {
	return scorePrestige(u.Rank) + scoreCostFit(u.EstimatedTuitionUSD, budget) + scoreAcademicFit(u.Competitiveness, gpa)
}

func scorePrestige(rank *int) int {
	r := unrankedRank
	if rank != nil {
		r = *rank
	}
	switch {
	case r <= 50:
		return 40
	case r <= 100:
		return 35
	case r <= 200:
		return 30
	case r <= 300:
		return 25
	default:
		return 20
	}
}

func scoreCostFit(tuition *int, budget int) int {
	// Missing tuition counts as affordable rather than penalizing the
	// university for incomplete data.
	t := 0.0
	if tuition != nil {
		t = float64(*tuition)
	}
	b := float64(budget)
	switch {
	case t <= b*0.7:
		return 30
	case t <= b:
		return 25
	case t <= b*1.2:
		return 15
	default:
		return 5
	}
}

func scoreAcademicFit(comp models.Competitiveness, gpa float64) int {
	switch comp {
	case models.CompetitivenessHigh:
		if gpa >= 8.5 {
			return 30
		} else if gpa >= 7.5 {
			return 20
		}
		return 10
	case models.CompetitivenessMedium:
		if gpa >= 7.0 {
			return 30
		} else if gpa >= 6.0 {
			return 25
		}
		return 15
	default: // LOW and VERY_LOW
		if gpa >= 6.0 {
			return 30
		}
		return 25
	}
}
