// internal/workers/application/send-stage-notification/handler.go
package sendstagenotification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/metrics"
	"advisor-workers/internal/models"
	"advisor-workers/internal/store"
)

const (
	TaskType = "send-stage-notification"
)

// EmailSender and SMSSender are satisfied by the aws package clients and let
// tests stub out the network.
type EmailSender interface {
	SendSimpleEmail(ctx context.Context, from, to, subject, body string) (string, error)
}

type SMSSender interface {
	PublishSMS(ctx context.Context, phoneNumber, message string) (string, error)
}

type Handler struct {
	config    *Config
	store     *store.Store
	email     EmailSender
	sms       SMSSender
	logger    logger.Logger
	templates map[models.Stage]notificationTemplate
}

type notificationTemplate struct {
	Subject string
	Body    string
}

func NewHandler(config *Config, st *store.Store, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		store:     st,
		email:     email,
		sms:       sms,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		templates: stageTemplates(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := "NOTIFICATION_SEND_FAILED"
		if stdErr, ok := err.(*apperrors.StandardError); ok {
			code = string(stdErr.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	if input.UserEmail == "" {
		// No recipient is a config state, not an error.
		h.logger.Warn("no recipient, notification disabled", map[string]interface{}{
			"stage": input.Stage,
		})
		return &Output{NotificationID: notificationID, Status: StatusDisabled, SentAt: sentAt}, nil
	}

	template, exists := h.templates[models.Stage(input.Stage)]
	if !exists {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("no notification template for stage %q", input.Stage))
	}

	profile, err := h.store.GetProfileByEmail(ctx, input.UserEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.logger.Warn("recipient not found, notification disabled", map[string]interface{}{
				"email": input.UserEmail,
			})
			return &Output{NotificationID: notificationID, Status: StatusDisabled, SentAt: sentAt}, nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	data := map[string]interface{}{
		"name":  profile.Name,
		"stage": input.Stage,
	}
	for k, v := range input.Metadata {
		data[k] = v
	}

	subject := renderTemplate(template.Subject, data)
	body := renderTemplate(template.Body, data)

	emailSent := false
	smsSent := false

	if h.config.EmailEnabled && h.email != nil {
		if _, err := h.email.SendSimpleEmail(ctx, h.config.FromEmail, profile.Email, subject, body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error": err,
				"email": profile.Email,
			})
			return nil, apperrors.NewNotificationSendFailedError("email", err)
		}
		emailSent = true
	}

	if h.config.SMSEnabled && h.sms != nil && input.PhoneNumber != "" {
		if _, err := h.sms.PublishSMS(ctx, input.PhoneNumber, body); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
				"phone": input.PhoneNumber,
			})
			return nil, apperrors.NewNotificationSendFailedError("sms", err)
		}
		smsSent = true
	}

	status := StatusDisabled
	if emailSent || smsSent {
		status = StatusSent
	}

	h.logger.Info("stage notification processed", map[string]interface{}{
		"email":  input.UserEmail,
		"stage":  input.Stage,
		"status": status,
	})

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		SentAt:         sentAt,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

// renderTemplate substitutes {{key}} placeholders, dropping the ones with no
// value so half-rendered braces never reach the user.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}
	return result
}

func stageTemplates() map[models.Stage]notificationTemplate {
	return map[models.Stage]notificationTemplate{
		models.StageDiscovery: {
			Subject: "Your profile is complete",
			Body:    "Hi {{name}}, your profile is complete. Your personalized university recommendations are ready.",
		},
		models.StageShortlist: {
			Subject: "Shortlist started",
			Body:    "Hi {{name}}, you added your first university. Keep building your shortlist and compare your options.",
		},
		models.StageLocked: {
			Subject: "University locked in",
			Body:    "Hi {{name}}, you locked {{universityName}}. Your application checklist is ready.",
		},
		models.StageApplication: {
			Subject: "Application checklist update",
			Body:    "Hi {{name}}, you completed {{completed}} of {{total}} application tasks.",
		},
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
