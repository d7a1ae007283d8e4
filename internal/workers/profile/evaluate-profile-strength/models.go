// internal/workers/profile/evaluate-profile-strength/models.go
package evaluateprofilestrength

import "advisor-workers/internal/models"

type Input struct {
	UserEmail string `json:"userEmail"`
}

type Output struct {
	TotalScore          int                   `json:"totalScore"`
	Sections            []models.SectionScore `json:"sections"`
	NextActions         []string              `json:"nextActions,omitempty"`
	HasLockedUniversity bool                  `json:"hasLockedUniversity"`
}
