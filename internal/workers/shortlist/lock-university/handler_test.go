// internal/workers/shortlist/lock-university/handler_test.go
package lockuniversity

import (
	"context"
	"fmt"
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
	h := NewHandler(&Config{Timeout: 15 * time.Second}, store.New(db, log), log)
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

func stateRow(stage models.Stage) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "stage", "updated_at"}).
		AddRow(1, 1, string(stage), time.Now())
}

func expectLockSequence(dbMock sqlmock.Sqlmock, userID, universityID int64) {
	now := time.Now()
	dbMock.ExpectBegin()
	dbMock.ExpectExec("UPDATE shortlists SET locked = false").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectQuery("UPDATE shortlists SET locked = true").
		WithArgs(userID, universityID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "university_id", "tier", "locked", "created_at"}).
			AddRow(7, userID, universityID, "TARGET", true, now))
	dbMock.ExpectExec("UPDATE user_states").
		WithArgs(userID, models.StageLocked).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec("DELETE FROM tasks").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	titles := []string{
		"Complete Statement of Purpose",
		"Gather Recommendation Letters",
		"Prepare Official Transcripts",
		"Check Application Deadlines",
		"Prepare Financial Documents",
		"Complete Standardized Tests",
		"Prepare Resume/CV",
	}
	for i, title := range titles {
		dbMock.ExpectQuery("INSERT INTO tasks").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "description", "stage", "university_id", "completed", "created_at"}).
				AddRow(int64(100+i), userID, title, fmt.Sprintf("desc %d", i), "APPLICATION", universityID, false, now))
	}
	dbMock.ExpectCommit()
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_LockGeneratesChecklist(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, stage").WithArgs(int64(1)).
		WillReturnRows(stateRow(models.StageShortlist))
	expectLockSequence(dbMock, 1, 42)
	dbMock.ExpectQuery("SELECT id, name, country").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country", "rank", "ranking_band", "estimated_tuition_usd"}).
			AddRow(42, "Purdue University", "United States", 120, "TOP_200", 28000))

	output, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 42,
	})

	require.NoError(t, err)
	assert.True(t, output.Entry.Locked)
	assert.Equal(t, models.StageLocked, output.Stage)
	require.Len(t, output.Tasks, 7)
	assert.Equal(t, "Complete Statement of Purpose", output.Tasks[0].Title)
	assert.Equal(t, "Prepare Resume/CV", output.Tasks[6].Title)
	assert.Equal(t, "Purdue University", output.University.Name)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestHandler_Execute_NotShortlisted(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, stage").WithArgs(int64(1)).
		WillReturnRows(stateRow(models.StageShortlist))
	dbMock.ExpectBegin()
	dbMock.ExpectExec("UPDATE shortlists SET locked = false").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectQuery("UPDATE shortlists SET locked = true").
		WithArgs(int64(1), int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "university_id", "tier", "locked", "created_at"}))
	dbMock.ExpectRollback()

	_, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 999,
	})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeShortlistEntryNotFound, stdErr.Code)
}

func TestHandler_Execute_RequiresInput(t *testing.T) {
	h, _, cleanup := setupHandler(t)
	defer cleanup()

	_, err := h.Execute(context.Background(), &Input{UserEmail: "priya@example.com"})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
}
