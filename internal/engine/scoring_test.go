// internal/engine/scoring_test.go
package engine

import (
	"testing"

	"advisor-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

// ==========================
// Fit Score Tests
// ==========================

func TestScoreUniversity(t *testing.T) {
	tests := []struct {
		name          string
		university    models.University
		gpa           float64
		budget        int
		expectedScore int
	}{
		{
			name: "top ranked affordable high gpa",
			university: models.University{
				Rank:                intPtr(30),
				Competitiveness:     models.CompetitivenessHigh,
				EstimatedTuitionUSD: intPtr(20000),
			},
			gpa:           9.0,
			budget:        40000,
			expectedScore: 100, // 40 prestige + 30 cost + 30 academic
		},
		{
			name: "reach school over budget",
			university: models.University{
				Rank:                intPtr(30),
				Competitiveness:     models.CompetitivenessHigh,
				EstimatedTuitionUSD: intPtr(50000),
			},
			gpa:           9.0,
			budget:        40000,
			expectedScore: 75, // 40 + 5 (too expensive) + 30
		},
		{
			name: "mid rank slightly over budget medium gpa",
			university: models.University{
				Rank:                intPtr(150),
				Competitiveness:     models.CompetitivenessLow,
				EstimatedTuitionUSD: intPtr(33000),
			},
			gpa:           6.5,
			budget:        30000,
			expectedScore: 75, // 30 + 15 (within 1.2x) + 30
		},
		{
			name: "unranked defaults to rank 500",
			university: models.University{
				Rank:                nil,
				Competitiveness:     models.CompetitivenessVeryLow,
				EstimatedTuitionUSD: intPtr(10000),
			},
			gpa:           5.0,
			budget:        30000,
			expectedScore: 75, // 20 + 30 + 25
		},
		{
			name: "missing tuition scores as affordable",
			university: models.University{
				Rank:                intPtr(80),
				Competitiveness:     models.CompetitivenessMedium,
				EstimatedTuitionUSD: nil,
			},
			gpa:           7.5,
			budget:        30000,
			expectedScore: 95, // 35 + 30 + 30
		},
		{
			name: "high competitiveness punishes low gpa",
			university: models.University{
				Rank:                intPtr(10),
				Competitiveness:     models.CompetitivenessHigh,
				EstimatedTuitionUSD: intPtr(25000),
			},
			gpa:           6.0,
			budget:        40000,
			expectedScore: 80, // 40 + 30 + 10
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreUniversity(tt.university, tt.gpa, tt.budget)
			assert.Equal(t, tt.expectedScore, score)
		})
	}
}

func TestScoreUniversity_Bounds(t *testing.T) {
	// Minimums per component: prestige 20, cost 5, academic 10 → floor 35.
	worst := models.University{
		Rank:                nil,
		Competitiveness:     models.CompetitivenessHigh,
		EstimatedTuitionUSD: intPtr(1000000),
	}
	assert.Equal(t, 35, ScoreUniversity(worst, 0, 10000))

	best := models.University{
		Rank:                intPtr(1),
		Competitiveness:     models.CompetitivenessHigh,
		EstimatedTuitionUSD: intPtr(1000),
	}
	assert.Equal(t, 100, ScoreUniversity(best, 10, 100000))
}

func TestScorePrestige(t *testing.T) {
	tests := []struct {
		rank     *int
		expected int
	}{
		{intPtr(1), 40},
		{intPtr(50), 40},
		{intPtr(51), 35},
		{intPtr(100), 35},
		{intPtr(101), 30},
		{intPtr(200), 30},
		{intPtr(201), 25},
		{intPtr(300), 25},
		{intPtr(301), 20},
		{nil, 20}, // unranked → 500
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, scorePrestige(tt.rank))
	}
}

func TestScoreCostFit_Boundaries(t *testing.T) {
	budget := 30000
	tests := []struct {
		name     string
		tuition  int
		expected int
	}{
		{"well within budget", 21000, 30}, // exactly 0.7x
		{"within budget", 30000, 25},
		{"slightly over", 36000, 15}, // exactly 1.2x
		{"too expensive", 36001, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreCostFit(intPtr(tt.tuition), budget))
		})
	}
}
