// internal/workers/shortlist/lock-university/models.go
package lockuniversity

import "advisor-workers/internal/models"

type Input struct {
	UserEmail    string `json:"userEmail"`
	UniversityID int64  `json:"universityId"`
}

type Output struct {
	Entry      *models.ShortlistEntry `json:"entry"`
	University *models.University     `json:"university"`
	Tasks      []models.Task          `json:"tasks"`
	Stage      models.Stage           `json:"stage"`
}
