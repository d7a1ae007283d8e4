// internal/models/state.go
package models

import "time"

// Stage is a user's position in the advising journey. Stages only move
// forward except for the shortlist-emptied fallback to DISCOVERY.
type Stage string

const (
	StageOnboarding  Stage = "ONBOARDING"
	StageDiscovery   Stage = "DISCOVERY"
	StageShortlist   Stage = "SHORTLIST"
	StageLocked      Stage = "LOCKED"
	StageApplication Stage = "APPLICATION"
)

// UserState tracks the journey stage per user. Created lazily at ONBOARDING
// on first access.
type UserState struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Stage     Stage     `json:"stage"`
	UpdatedAt time.Time `json:"updatedAt"`
}
