// internal/engine/strength_test.go
package engine

import (
	"testing"

	"advisor-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func completeProfile() *models.UserProfile {
	return &models.UserProfile{
		Email:              "priya@example.com",
		Name:               "Priya",
		GPA:                floatPtr(9.2),
		Degree:             "B.Tech",
		FieldOfStudy:       "Computer Science",
		GraduationYear:     intPtr(2024),
		PreferredCountries: []string{"United States"},
		BudgetPerYear:      intPtr(45000),
		FundingPlan:        "Education loan plus family savings",
		IELTSStatus:        models.StatusCompleted,
		GREGMATStatus:      models.StatusCompleted,
		SOPStatus:          models.StatusCompleted,
		ProfileComplete:    true,
	}
}

// ==========================
// Profile Strength Tests
// ==========================

func TestEvaluateProfileStrength_CompleteProfile(t *testing.T) {
	result := EvaluateProfileStrength(completeProfile(), true)

	assert.Equal(t, 100, result.TotalScore)
	assert.True(t, result.HasLockedUniversity)
	assert.Empty(t, result.NextActions)
	assert.Len(t, result.Sections, 5)
	for _, s := range result.Sections {
		assert.Equal(t, s.MaxScore, s.Score, "section %s should be full", s.Name)
		assert.Equal(t, models.SectionStrong, s.Status)
	}
}

func TestEvaluateProfileStrength_EmptyProfile(t *testing.T) {
	result := EvaluateProfileStrength(&models.UserProfile{}, false)

	assert.Equal(t, 0, result.TotalScore)
	assert.False(t, result.HasLockedUniversity)
	assert.Len(t, result.NextActions, 3)
	for _, s := range result.Sections {
		assert.Equal(t, models.SectionMissing, s.Status)
	}
}

func TestEvaluateProfileStrength_SectionWeights(t *testing.T) {
	result := EvaluateProfileStrength(completeProfile(), false)

	expected := map[string]int{
		"Academics":   30,
		"Exams":       25,
		"SOP":         20,
		"Documents":   15,
		"Preferences": 10,
	}
	total := 0
	for _, s := range result.Sections {
		assert.Equal(t, expected[s.Name], s.MaxScore, "max for %s", s.Name)
		total += s.MaxScore
	}
	assert.Equal(t, 100, total)
}

func TestEvaluateProfileStrength_PartialExams(t *testing.T) {
	p := completeProfile()
	p.IELTSStatus = models.StatusInProgress
	p.GREGMATStatus = models.StatusNotStarted

	result := EvaluateProfileStrength(p, false)

	var exams models.SectionScore
	for _, s := range result.Sections {
		if s.Name == "Exams" {
			exams = s
		}
	}
	assert.Equal(t, 6, exams.Score) // IELTS in progress 6, GRE 0
	assert.Equal(t, models.SectionWeak, exams.Status)
	assert.Equal(t, 100-25+6, result.TotalScore)
}

func TestEvaluateProfileStrength_NextActionsCappedAtThree(t *testing.T) {
	// Empty profile has a gap in every section; only three actions surface,
	// taken in section order so academics comes first.
	result := EvaluateProfileStrength(&models.UserProfile{}, false)

	assert.Len(t, result.NextActions, 3)
	assert.Contains(t, result.NextActions[0], "GPA")
}

func TestSectionStatus(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		max      int
		expected models.SectionStatus
	}{
		{"zero is missing", 0, 20, models.SectionMissing},
		{"full is strong", 20, 20, models.SectionStrong},
		{"eighty percent is strong", 16, 20, models.SectionStrong},
		{"half is average", 10, 20, models.SectionAverage},
		{"forty percent is average", 8, 20, models.SectionAverage},
		{"below forty is weak", 6, 20, models.SectionWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sectionStatus(tt.score, tt.max))
		})
	}
}
