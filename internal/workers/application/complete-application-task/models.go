// internal/workers/application/complete-application-task/models.go
package completeapplicationtask

import "advisor-workers/internal/models"

type Input struct {
	UserEmail string `json:"userEmail"`
	TaskID    int64  `json:"taskId"`
}

type Output struct {
	TaskID    int64         `json:"taskId"`
	Tasks     []models.Task `json:"tasks"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
	AllDone   bool          `json:"allDone"`
}
