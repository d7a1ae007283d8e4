// internal/workers/shortlist/add-shortlist-entry/models.go
package addshortlistentry

import "advisor-workers/internal/models"

type Input struct {
	UserEmail    string `json:"userEmail"`
	UniversityID int64  `json:"universityId"`
	Tier         string `json:"tier,omitempty"`
}

type Output struct {
	Entry      *models.ShortlistEntry `json:"entry"`
	University *models.University     `json:"university"`
	Stage      models.Stage           `json:"stage"`
}
