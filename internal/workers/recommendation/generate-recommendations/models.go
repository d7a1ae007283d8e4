// internal/workers/recommendation/generate-recommendations/models.go
package generaterecommendations

import "advisor-workers/internal/models"

type Input struct {
	UserEmail string         `json:"userEmail,omitempty"`
	Profile   *InlineProfile `json:"profile,omitempty"`
	PoolLimit int            `json:"poolLimit,omitempty"`
}

// InlineProfile lets process variables carry the profile directly instead of
// referencing a stored one.
type InlineProfile struct {
	GPA                float64  `json:"gpa"`
	BudgetPerYear      *int     `json:"budgetPerYear,omitempty"`
	PreferredCountries []string `json:"preferredCountries,omitempty"`
	ProfileComplete    bool     `json:"profileComplete"`
}

type Output struct {
	Reach      []models.RecommendedUniversity `json:"reach"`
	Target     []models.RecommendedUniversity `json:"target"`
	Safe       []models.RecommendedUniversity `json:"safe"`
	TotalCount int                            `json:"totalCount"`
	Degraded   bool                           `json:"degraded,omitempty"`
}
