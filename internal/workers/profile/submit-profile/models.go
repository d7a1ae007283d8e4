// internal/workers/profile/submit-profile/models.go
package submitprofile

import "advisor-workers/internal/models"

type Input struct {
	UserEmail string                 `json:"userEmail"`
	Profile   map[string]interface{} `json:"profile"`
}

type Output struct {
	UserID          int64        `json:"userId"`
	ProfileComplete bool         `json:"profileComplete"`
	MissingFields   []string     `json:"missingFields"`
	Stage           models.Stage `json:"stage"`
	Message         string       `json:"message,omitempty"`
}
