// internal/models/task.go
package models

import "time"

// Task is an application checklist item, generated when a university is
// locked and cleared when the lock is released.
type Task struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Stage        Stage     `json:"stage"`
	UniversityID *int64    `json:"universityId,omitempty"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
}
