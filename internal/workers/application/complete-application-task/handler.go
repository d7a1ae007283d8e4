// internal/workers/application/complete-application-task/handler.go
package completeapplicationtask

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/metrics"
	"advisor-workers/internal/store"
)

const (
	TaskType = "complete-application-task"
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
		code := "UNKNOWN_ERROR"
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
	if input.TaskID <= 0 {
		return nil, apperrors.NewValidationFailedError("taskId is required")
	}

	profile, err := h.store.GetProfileByEmail(ctx, input.UserEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewProfileNotFoundError(input.UserEmail)
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if err := h.store.CompleteTask(ctx, profile.ID, input.TaskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewTaskNotFoundError(input.TaskID)
		}
		return nil, fmt.Errorf("complete task: %w", err)
	}

	tasks, err := h.store.ListTasks(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	h.logger.Info("application task completed", map[string]interface{}{
		"email":     input.UserEmail,
		"taskId":    input.TaskID,
		"completed": completed,
		"total":     len(tasks),
	})

	return &Output{
		TaskID:    input.TaskID,
		Tasks:     tasks,
		Completed: completed,
		Total:     len(tasks),
		AllDone:   len(tasks) > 0 && completed == len(tasks),
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
