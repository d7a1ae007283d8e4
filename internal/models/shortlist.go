// internal/models/shortlist.go
package models

import "time"

// Tier classifies a recommendation or shortlist entry by admission odds.
type Tier string

const (
	TierReach  Tier = "REACH"
	TierTarget Tier = "TARGET"
	TierSafe   Tier = "SAFE"
)

// ShortlistEntry links a user to a university they are considering.
// At most one entry per user may be locked.
type ShortlistEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	UniversityID int64     `json:"universityId"`
	Tier         Tier      `json:"tier"`
	Locked       bool      `json:"locked"`
	CreatedAt    time.Time `json:"createdAt"`
}
