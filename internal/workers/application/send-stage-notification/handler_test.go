// internal/workers/application/send-stage-notification/handler_test.go
package sendstagenotification

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	apperrors "advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockEmailSender struct {
	to      string
	subject string
	body    string
	err     error
	calls   int
}

func (m *mockEmailSender) SendSimpleEmail(_ context.Context, _, to, subject, body string) (string, error) {
	m.calls++
	m.to, m.subject, m.body = to, subject, body
	if m.err != nil {
		return "", m.err
	}
	return "msg-1", nil
}

type mockSMSSender struct {
	phone   string
	message string
	err     error
	calls   int
}

func (m *mockSMSSender) PublishSMS(_ context.Context, phoneNumber, message string) (string, error) {
	m.calls++
	m.phone, m.message = phoneNumber, message
	if m.err != nil {
		return "", m.err
	}
	return "sms-1", nil
}

func setupHandler(t *testing.T, cfg *Config, email EmailSender, sms SMSSender) (*Handler, sqlmock.Sqlmock, func()) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	h := NewHandler(cfg, store.New(db, log), email, sms, log)
	return h, dbMock, func() { db.Close() }
}

func emailConfig() *Config {
	return &Config{
		EmailEnabled: true,
		FromEmail:    "advisor@example.com",
		Timeout:      30 * time.Second,
	}
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

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SendsStageEmail(t *testing.T) {
	email := &mockEmailSender{}
	h, dbMock, cleanup := setupHandler(t, emailConfig(), email, nil)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())

	output, err := h.Execute(context.Background(), &Input{
		UserEmail: "priya@example.com",
		Stage:     "LOCKED",
		Metadata:  map[string]interface{}{"universityName": "Purdue University"},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.NotEmpty(t, output.NotificationID)
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, "priya@example.com", email.to)
	assert.Equal(t, "University locked in", email.subject)
	assert.Contains(t, email.body, "Priya")
	assert.Contains(t, email.body, "Purdue University")
}

func TestHandler_Execute_MissingPlaceholdersDropped(t *testing.T) {
	email := &mockEmailSender{}
	h, dbMock, cleanup := setupHandler(t, emailConfig(), email, nil)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())

	_, err := h.Execute(context.Background(), &Input{
		UserEmail: "priya@example.com",
		Stage:     "LOCKED",
	})

	require.NoError(t, err)
	assert.NotContains(t, email.body, "{{")
	assert.NotContains(t, email.body, "}}")
}

func TestHandler_Execute_SMSOnlyWhenPhoneGiven(t *testing.T) {
	sms := &mockSMSSender{}
	cfg := &Config{SMSEnabled: true, Timeout: 30 * time.Second}
	h, dbMock, cleanup := setupHandler(t, cfg, nil, sms)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())

	output, err := h.Execute(context.Background(), &Input{
		UserEmail:   "priya@example.com",
		PhoneNumber: "+15550100",
		Stage:       "SHORTLIST",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, "+15550100", sms.phone)
}

// ==========================
// Degraded / Failure Tests
// ==========================

func TestHandler_Execute_NoRecipientIsDisabled(t *testing.T) {
	h, _, cleanup := setupHandler(t, emailConfig(), &mockEmailSender{}, nil)
	defer cleanup()

	output, err := h.Execute(context.Background(), &Input{Stage: "DISCOVERY"})

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
}

func TestHandler_Execute_UnknownProfileIsDisabled(t *testing.T) {
	email := &mockEmailSender{}
	h, dbMock, cleanup := setupHandler(t, emailConfig(), email, nil)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	output, err := h.Execute(context.Background(), &Input{
		UserEmail: "ghost@example.com",
		Stage:     "DISCOVERY",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Equal(t, 0, email.calls)
}

func TestHandler_Execute_EmailFailureSurfaces(t *testing.T) {
	email := &mockEmailSender{err: errors.New("ses unavailable")}
	h, dbMock, cleanup := setupHandler(t, emailConfig(), email, nil)
	defer cleanup()

	dbMock.ExpectQuery("SELECT").WithArgs("priya@example.com").
		WillReturnRows(profileRow())

	_, err := h.Execute(context.Background(), &Input{
		UserEmail: "priya@example.com",
		Stage:     "DISCOVERY",
	})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, stdErr.Code)
}

func TestHandler_Execute_UnknownStageRejected(t *testing.T) {
	h, _, cleanup := setupHandler(t, emailConfig(), &mockEmailSender{}, nil)
	defer cleanup()

	_, err := h.Execute(context.Background(), &Input{
		UserEmail: "priya@example.com",
		Stage:     "GRADUATION",
	})

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
}
