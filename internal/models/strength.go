// internal/models/strength.go
package models

// SectionStatus summarizes how far along one profile section is.
type SectionStatus string

const (
	SectionMissing SectionStatus = "missing"
	SectionWeak    SectionStatus = "weak"
	SectionAverage SectionStatus = "average"
	SectionStrong  SectionStatus = "strong"
)

// SectionScore is the evaluated score for one profile section.
type SectionScore struct {
	Name      string        `json:"name"`
	Score     int           `json:"score"`
	MaxScore  int           `json:"maxScore"`
	Status    SectionStatus `json:"status"`
	NextSteps []string      `json:"nextSteps,omitempty"`
}

// ProfileStrengthResult is the point-weighted readiness summary for a
// profile. Derived on demand, never stored.
type ProfileStrengthResult struct {
	TotalScore          int            `json:"totalScore"` // out of 100
	Sections            []SectionScore `json:"sections"`
	NextActions         []string       `json:"nextActions,omitempty"` // at most 3
	HasLockedUniversity bool           `json:"hasLockedUniversity"`
}
