// internal/models/recommendation.go
package models

// RecommendedUniversity is a scored candidate returned to the caller.
// MatchPercentage equals the fit score.
type RecommendedUniversity struct {
	University      University `json:"university"`
	FitScore        int        `json:"fitScore"`
	MatchPercentage int        `json:"matchPercentage"`
	Tier            Tier       `json:"tier"`
}

// CategorizedUniversities groups recommendations by tier. Each tier holds
// at most five entries.
type CategorizedUniversities struct {
	Reach  []RecommendedUniversity `json:"reach"`
	Target []RecommendedUniversity `json:"target"`
	Safe   []RecommendedUniversity `json:"safe"`
}

// Total returns the number of recommendations across all tiers.
func (c CategorizedUniversities) Total() int {
	return len(c.Reach) + len(c.Target) + len(c.Safe)
}
