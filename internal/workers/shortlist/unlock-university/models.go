// internal/workers/shortlist/unlock-university/models.go
package unlockuniversity

import "advisor-workers/internal/models"

type Input struct {
	UserEmail string `json:"userEmail"`
}

type Output struct {
	Remaining int          `json:"remaining"`
	Stage     models.Stage `json:"stage"`
}
