// internal/workers/shortlist/remove-shortlist-entry/handler_test.go
package removeshortlistentry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	apperrors "advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/models"
	"advisor-workers/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, func()) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	h := NewHandler(&Config{Timeout: 10 * time.Second}, store.New(db, log), log)
	return h, dbMock, func() { db.Close() }
}

func profileRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "name", "gpa", "degree",
		"field_of_study", "graduation_year", "intended_degree",
		"intake_year", "preferred_countries", "budget_per_year",
		"funding_plan", "ielts_status", "gre_gmat_status", "sop_status",
		"profile_complete", "created_at", "updated_at",
	}).AddRow(
		1, "priya@example.com", "Priya", 9.0, "B.Tech",
		"CS", 2024, "MS",
		2026, pq.StringArray{"United States"}, 40000,
		"loan", "COMPLETED", "COMPLETED", "COMPLETED",
		true, now, now,
	)
}

func entryRow(locked bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "university_id", "tier", "locked", "created_at"}).
		AddRow(7, 1, 42, "TARGET", locked, time.Now())
}

func stateRow(stage models.Stage) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "stage", "updated_at"}).
		AddRow(1, 1, string(stage), time.Now())
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_RemovalKeepsStageWhenEntriesRemain(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, university_id").WithArgs(int64(1), int64(42)).
		WillReturnRows(entryRow(false))
	dbMock.ExpectExec("DELETE FROM shortlists").WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectQuery("SELECT COUNT").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	dbMock.ExpectQuery("SELECT id, user_id, stage").WithArgs(int64(1)).
		WillReturnRows(stateRow(models.StageShortlist))

	output, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 42,
	})

	require.NoError(t, err)
	assert.True(t, output.Removed)
	assert.Equal(t, 2, output.Remaining)
	assert.Equal(t, models.StageShortlist, output.Stage)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestHandler_Execute_LastRemovalFallsBackToDiscovery(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, university_id").WithArgs(int64(1), int64(42)).
		WillReturnRows(entryRow(false))
	dbMock.ExpectExec("DELETE FROM shortlists").WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectQuery("SELECT COUNT").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	dbMock.ExpectQuery("SELECT id, user_id, stage").WithArgs(int64(1)).
		WillReturnRows(stateRow(models.StageShortlist))
	dbMock.ExpectExec("UPDATE user_states").
		WithArgs(int64(1), models.StageDiscovery).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec("DELETE FROM tasks").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	output, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 42,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, output.Remaining)
	assert.Equal(t, models.StageDiscovery, output.Stage)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// ==========================
// Guard Tests
// ==========================

func TestHandler_Execute_LockedEntryRefused(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, university_id").WithArgs(int64(1), int64(42)).
		WillReturnRows(entryRow(true))

	_, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 42,
	})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeLockedEntryRemoval, stdErr.Code)
}

func TestHandler_Execute_ConcurrentLockRefusedAsLockedRemoval(t *testing.T) {
	// The entry reads back unlocked, but a lock lands before the guarded
	// DELETE runs, so the DELETE matches nothing. The re-read must surface
	// the lock, not a not-found error.
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, university_id").WithArgs(int64(1), int64(42)).
		WillReturnRows(entryRow(false))
	dbMock.ExpectExec("DELETE FROM shortlists").WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectQuery("SELECT id, user_id, university_id").WithArgs(int64(1), int64(42)).
		WillReturnRows(entryRow(true))

	_, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 42,
	})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeLockedEntryRemoval, stdErr.Code)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestHandler_Execute_MissingEntry(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, university_id").WithArgs(int64(1), int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 999,
	})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeShortlistEntryNotFound, stdErr.Code)
}
