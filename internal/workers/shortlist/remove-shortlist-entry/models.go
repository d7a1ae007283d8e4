// internal/workers/shortlist/remove-shortlist-entry/models.go
package removeshortlistentry

import "advisor-workers/internal/models"

type Input struct {
	UserEmail    string `json:"userEmail"`
	UniversityID int64  `json:"universityId"`
}

type Output struct {
	Removed   bool         `json:"removed"`
	Remaining int          `json:"remaining"`
	Stage     models.Stage `json:"stage"`
}
