// internal/engine/stages.go
package engine

import "advisor-workers/internal/models"

// stageOrder ranks stages so "at or past" checks are cheap. APPLICATION is
// the task-holding face of LOCKED and shares its rank.
var stageOrder = map[models.Stage]int{
	models.StageOnboarding:  0,
	models.StageDiscovery:   1,
	models.StageShortlist:   2,
	models.StageLocked:      3,
	models.StageApplication: 3,
}

// StageAtLeast reports whether current has reached the required stage.
func StageAtLeast(current, required models.Stage) bool {
	return stageOrder[current] >= stageOrder[required]
}

// StageAfterProfileComplete returns the stage a user moves to after
// completing their profile. Idempotent: users past DISCOVERY stay put.
func StageAfterProfileComplete(current models.Stage) models.Stage {
	if StageAtLeast(current, models.StageDiscovery) {
		return current
	}
	return models.StageDiscovery
}

// StageAfterShortlistAdd returns the stage after adding a shortlist entry.
// The first add at DISCOVERY advances to SHORTLIST; later adds change
// nothing.
func StageAfterShortlistAdd(current models.Stage) models.Stage {
	if StageAtLeast(current, models.StageShortlist) {
		return current
	}
	return models.StageShortlist
}

// StageAfterShortlistEmpty returns the stage after the shortlist drained to
// zero entries. Users fall back to DISCOVERY; this is the only backward
// transition.
func StageAfterShortlistEmpty(current models.Stage) models.Stage {
	if StageAtLeast(current, models.StageShortlist) {
		return models.StageDiscovery
	}
	return current
}

// StageAfterUnlock returns the stage after releasing a lock while entries
// remain on the shortlist.
func StageAfterUnlock() models.Stage {
	return models.StageShortlist
}
