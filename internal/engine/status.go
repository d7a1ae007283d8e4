// internal/engine/status.go
package engine

import (
	"strings"

	"advisor-workers/internal/models"
)

var statusSynonyms = map[string]models.ExamStatus{
	"completed":   models.StatusCompleted,
	"done":        models.StatusCompleted,
	"ready":       models.StatusCompleted,
	"finished":    models.StatusCompleted,
	"in progress": models.StatusInProgress,
	"in_progress": models.StatusInProgress,
	"draft":       models.StatusInProgress,
	"drafting":    models.StatusInProgress,
	"started":     models.StatusInProgress,
	"planning":    models.StatusInProgress,
	"not started": models.StatusNotStarted,
	"not_started": models.StatusNotStarted,
	"pending":     models.StatusNotStarted,
	"todo":        models.StatusNotStarted,
	"none":        models.StatusNotStarted,
}

// NormalizeStatus folds a free-form status string onto the canonical
// three-value scale. Unrecognized non-empty values count as IN_PROGRESS:
// the user said something, so work has presumably begun. Returns whether
// the value was recognized so callers can log the permissive fallback.
func NormalizeStatus(raw string) (models.ExamStatus, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return models.StatusNotStarted, true
	}
	if status, ok := statusSynonyms[trimmed]; ok {
		return status, true
	}
	return models.StatusInProgress, false
}
