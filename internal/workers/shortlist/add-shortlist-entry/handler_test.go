// internal/workers/shortlist/add-shortlist-entry/handler_test.go
package addshortlistentry

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

func stateRow(stage models.Stage) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "stage", "updated_at"}).
		AddRow(1, 1, string(stage), time.Now())
}

func universityRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "country", "rank", "ranking_band", "estimated_tuition_usd"}).
		AddRow(42, "Purdue University", "United States", 120, "TOP_200", 28000)
}

func entryRow(tier string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "university_id", "tier", "locked", "created_at"}).
		AddRow(7, 1, 42, tier, false, time.Now())
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_FirstAddAdvancesToShortlist(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, stage").WithArgs(int64(1)).
		WillReturnRows(stateRow(models.StageDiscovery))
	dbMock.ExpectQuery("SELECT id, name, country").WithArgs(int64(42)).
		WillReturnRows(universityRow())
	dbMock.ExpectQuery("INSERT INTO shortlists").
		WithArgs(int64(1), int64(42), models.TierSafe).
		WillReturnRows(entryRow("SAFE"))
	dbMock.ExpectExec("UPDATE user_states").
		WithArgs(int64(1), models.StageShortlist).
		WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 42,
		Tier:         "SAFE",
	})

	require.NoError(t, err)
	assert.Equal(t, models.TierSafe, output.Entry.Tier)
	assert.Equal(t, models.StageShortlist, output.Stage)
	assert.Equal(t, "Purdue University", output.University.Name)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestHandler_Execute_LaterAddKeepsStage(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, stage").WithArgs(int64(1)).
		WillReturnRows(stateRow(models.StageLocked))
	dbMock.ExpectQuery("SELECT id, name, country").WithArgs(int64(42)).
		WillReturnRows(universityRow())
	dbMock.ExpectQuery("INSERT INTO shortlists").
		WithArgs(int64(1), int64(42), models.TierTarget).
		WillReturnRows(entryRow("TARGET"))
	// No stage update: LOCKED already past SHORTLIST.

	output, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 42,
	})

	require.NoError(t, err)
	assert.Equal(t, models.StageLocked, output.Stage)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// ==========================
// Guard Tests
// ==========================

func TestHandler_Execute_OnboardingBlocked(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, stage").WithArgs(int64(1)).
		WillReturnRows(stateRow(models.StageOnboarding))

	_, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 42,
	})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidStageTransition, stdErr.Code)
}

func TestHandler_Execute_UnknownUniversity(t *testing.T) {
	h, dbMock, cleanup := setupHandler(t)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())
	dbMock.ExpectQuery("SELECT id, user_id, stage").WithArgs(int64(1)).
		WillReturnRows(stateRow(models.StageDiscovery))
	dbMock.ExpectQuery("SELECT id, name, country").WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := h.Execute(context.Background(), &Input{
		UserEmail:    "priya@example.com",
		UniversityID: 999,
	})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeUniversityNotFound, stdErr.Code)
}

func TestHandler_Execute_RequiresIDs(t *testing.T) {
	h, _, cleanup := setupHandler(t)
	defer cleanup()

	tests := []struct {
		name  string
		input Input
	}{
		{"missing email", Input{UniversityID: 42}},
		{"missing university", Input{UserEmail: "priya@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			require.Error(t, err)
			stdErr, ok := err.(*apperrors.StandardError)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
		})
	}
}
