// internal/workers/profile/submit-profile/handler.go
package submitprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/metrics"
	"advisor-workers/internal/engine"
	"advisor-workers/internal/store"
)

const (
	TaskType = "submit-profile"
)

type Handler struct {
	config *Config
	store  *store.Store
	logger logger.Logger
}

func NewHandler(config *Config, st *store.Store, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  st,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		code := "VALIDATION_FAILED"
		if stdErr, ok := err.(*apperrors.StandardError); ok {
			code = string(stdErr.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserEmail == "" {
		return nil, apperrors.NewValidationFailedError("userEmail is required")
	}
	if input.Profile == nil {
		input.Profile = map[string]interface{}{}
	}

	if result := validatePayload(input.UserEmail, input.Profile); !result.Valid {
		return nil, apperrors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	profile, err := h.store.GetOrCreateProfile(ctx, input.UserEmail)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	unrecognized := applyPayload(profile, input.Profile)
	for _, field := range unrecognized {
		h.logger.Warn("unrecognized exam status, treating as in progress", map[string]interface{}{
			"field": field,
			"email": input.UserEmail,
		})
	}

	missing := missingFields(profile)
	profile.ProfileComplete = len(missing) == 0

	if err := h.store.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	state, err := h.store.GetOrCreateState(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	stage := state.Stage
	if profile.ProfileComplete {
		if next := engine.StageAfterProfileComplete(state.Stage); next != state.Stage {
			if err := h.store.UpdateStage(ctx, profile.ID, next); err != nil {
				return nil, fmt.Errorf("advance stage: %w", err)
			}
			metrics.StageTransitions.WithLabelValues(string(state.Stage), string(next)).Inc()
			stage = next
		}
	}

	output := &Output{
		UserID:          profile.ID,
		ProfileComplete: profile.ProfileComplete,
		MissingFields:   missing,
		Stage:           stage,
	}
	if len(missing) > 0 {
		output.Message = fmt.Sprintf("Please provide the following details to proceed: %s.", strings.Join(missing, ", "))
	}
	return output, nil
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
