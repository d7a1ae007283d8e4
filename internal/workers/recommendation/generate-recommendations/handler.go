// internal/workers/recommendation/generate-recommendations/handler.go
package generaterecommendations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "advisor-workers/internal/common/errors"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/metrics"
	"advisor-workers/internal/engine"
	"advisor-workers/internal/models"
	"advisor-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "generate-recommendations"
)

type Handler struct {
	config *Config
	store  *store.Store
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, st *store.Store, rdb *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  st,
		redis:  rdb,
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
		code := string(apperrors.ErrCodeValidationFailed)
		if stdErr, ok := err.(*apperrors.StandardError); ok {
			code = string(stdErr.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	gpa, budget, countries, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	limit := h.config.Defaults.ApplyPoolLimit(input.PoolLimit)

	pool, degraded := h.fetchCandidatePool(ctx, countries, budget, limit)

	categorized := engine.ClassifyAndCap(pool, gpa, budget)

	metrics.RecommendationsGenerated.WithLabelValues("reach").Add(float64(len(categorized.Reach)))
	metrics.RecommendationsGenerated.WithLabelValues("target").Add(float64(len(categorized.Target)))
	metrics.RecommendationsGenerated.WithLabelValues("safe").Add(float64(len(categorized.Safe)))

	h.logger.Info("recommendations generated", map[string]interface{}{
		"userEmail": input.UserEmail,
		"poolSize":  len(pool),
		"reach":     len(categorized.Reach),
		"target":    len(categorized.Target),
		"safe":      len(categorized.Safe),
		"degraded":  degraded,
	})

	return &Output{
		Reach:      categorized.Reach,
		Target:     categorized.Target,
		Safe:       categorized.Safe,
		TotalCount: categorized.Total(),
		Degraded:   degraded,
	}, nil
}

// resolveProfile turns the input into scoring parameters, preferring the
// inline profile over a stored one. Incomplete profiles are rejected before
// any scoring happens.
func (h *Handler) resolveProfile(ctx context.Context, input *Input) (gpa float64, budget int, countries []string, err error) {
	d := h.config.Defaults

	if input.Profile != nil {
		if !input.Profile.ProfileComplete {
			return 0, 0, nil, apperrors.NewProfileIncompleteError(input.UserEmail)
		}
		return input.Profile.GPA,
			d.ApplyBudget(input.Profile.BudgetPerYear),
			d.ApplyCountries(input.Profile.PreferredCountries),
			nil
	}

	if input.UserEmail == "" {
		return 0, 0, nil, apperrors.NewValidationFailedError("userEmail or profile is required")
	}

	profile, err := h.store.GetProfileByEmail(ctx, input.UserEmail)
	if err != nil {
		return 0, 0, nil, apperrors.NewProfileNotFoundError(input.UserEmail)
	}
	if !profile.ProfileComplete {
		return 0, 0, nil, apperrors.NewProfileIncompleteError(input.UserEmail)
	}

	gpa = 0
	if profile.GPA != nil {
		gpa = *profile.GPA
	}
	return gpa, d.ApplyBudget(profile.BudgetPerYear), d.ApplyCountries(profile.PreferredCountries), nil
}

// fetchCandidatePool loads the university pool, Redis cache first. Upstream
// failure degrades to an empty pool instead of failing the job.
func (h *Handler) fetchCandidatePool(ctx context.Context, countries []string, budget int, limit int) ([]models.University, bool) {
	cacheKey := poolCacheKey(countries, budget, limit)

	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var pool []models.University
		if err := json.Unmarshal([]byte(val), &pool); err == nil {
			metrics.CandidatePoolCacheHits.WithLabelValues("hit").Inc()
			return pool, false
		}
	}
	metrics.CandidatePoolCacheHits.WithLabelValues("miss").Inc()

	// Budget ceiling at 1.2x so slightly-over-budget schools stay in the
	// pool; the cost component of the score handles the penalty.
	maxCost := budget + budget/5
	pool, err := h.store.FetchUniversitiesByCriteria(ctx, countries, &maxCost, limit)
	if err != nil {
		h.logger.Warn("university fetch failed, returning degraded result", map[string]interface{}{
			"countries": countries,
			"error":     err,
		})
		return []models.University{}, true
	}

	if data, err := json.Marshal(pool); err == nil {
		h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
	}
	return pool, false
}

func poolCacheKey(countries []string, budget, limit int) string {
	return fmt.Sprintf("recs:pool:%s:%d:%d", strings.Join(countries, ","), budget, limit)
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
