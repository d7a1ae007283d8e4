// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"advisor-workers/internal/common/aws"
	"advisor-workers/internal/common/camunda"
	"advisor-workers/internal/common/config"
	"advisor-workers/internal/common/database"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/observability"
	"advisor-workers/internal/engine"
	"advisor-workers/internal/store"
	"advisor-workers/pkg/registry"

	// Profile Workers (2)
	eps "advisor-workers/internal/workers/profile/evaluate-profile-strength"
	sp "advisor-workers/internal/workers/profile/submit-profile"

	// Recommendation Workers (2)
	gr "advisor-workers/internal/workers/recommendation/generate-recommendations"
	su "advisor-workers/internal/workers/recommendation/search-universities"

	// Shortlist Workers (4)
	ase "advisor-workers/internal/workers/shortlist/add-shortlist-entry"
	lu "advisor-workers/internal/workers/shortlist/lock-university"
	rse "advisor-workers/internal/workers/shortlist/remove-shortlist-entry"
	uu "advisor-workers/internal/workers/shortlist/unlock-university"

	// Application Workers (2)
	cat "advisor-workers/internal/workers/application/complete-application-task"
	ssn "advisor-workers/internal/workers/application/send-stage-notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)

	ctx := context.Background()

	// --- Validate Activity Registry ---
	if reg, regErr := registry.LoadRegistry(cfg.Registry.Path); regErr != nil {
		zapLog.Warn("activity registry not loaded", zap.String("path", cfg.Registry.Path), zap.Error(regErr))
	} else if regErr = reg.Validate(); regErr != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(regErr))
	} else {
		zapLog.Info("Activity registry validated", zap.Int("activities", len(reg.Activities)))
	}

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	workers := camunda.NewWorkerSet(camundaClient.GetClient(), obs, zapLog)

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Shared Store ---
	db := store.New(pg.DB, log)

	// --- START: Register ALL 10 Workers ---

	// --- 1. Profile Workers (2) ---
	if cfg.Workers[sp.TaskType].Enabled {
		handler := sp.NewHandler(
			&sp.Config{
				Timeout: config.GetDuration(cfg.Workers[sp.TaskType].Timeout),
			},
			db, log,
		)
		startWorker(workers, sp.TaskType, cfg.Workers[sp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[eps.TaskType].Enabled {
		handler := eps.NewHandler(
			&eps.Config{
				Timeout: config.GetDuration(cfg.Workers[eps.TaskType].Timeout),
			},
			db, log,
		)
		startWorker(workers, eps.TaskType, cfg.Workers[eps.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Recommendation Workers (2) ---
	if cfg.Workers[gr.TaskType].Enabled {
		handler := gr.NewHandler(
			&gr.Config{
				Timeout:  config.GetDuration(cfg.Workers[gr.TaskType].Timeout),
				CacheTTL: time.Duration(cfg.Engine.CacheTTL) * time.Second,
				Defaults: engine.Defaults{
					Countries: cfg.Engine.DefaultCountries,
					Budget:    cfg.Engine.DefaultBudget,
					PoolLimit: cfg.Engine.PoolLimit,
					Rank:      cfg.Engine.DefaultRank,
				},
			},
			db, redis.GetClient(), log,
		)
		startWorker(workers, gr.TaskType, cfg.Workers[gr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[su.TaskType].Enabled {
		handler := su.NewHandler(
			&su.Config{
				Timeout: config.GetDuration(cfg.Workers[su.TaskType].Timeout),
				Index:   cfg.Database.Elasticsearch.Index,
			},
			esClient, log,
		)
		startWorker(workers, su.TaskType, cfg.Workers[su.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Shortlist Workers (4) ---
	if cfg.Workers[ase.TaskType].Enabled {
		handler := ase.NewHandler(
			&ase.Config{
				Timeout: config.GetDuration(cfg.Workers[ase.TaskType].Timeout),
			},
			db, log,
		)
		startWorker(workers, ase.TaskType, cfg.Workers[ase.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rse.TaskType].Enabled {
		handler := rse.NewHandler(
			&rse.Config{
				Timeout: config.GetDuration(cfg.Workers[rse.TaskType].Timeout),
			},
			db, log,
		)
		startWorker(workers, rse.TaskType, cfg.Workers[rse.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[lu.TaskType].Enabled {
		handler := lu.NewHandler(
			&lu.Config{
				Timeout: config.GetDuration(cfg.Workers[lu.TaskType].Timeout),
			},
			db, log,
		)
		startWorker(workers, lu.TaskType, cfg.Workers[lu.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[uu.TaskType].Enabled {
		handler := uu.NewHandler(
			&uu.Config{
				Timeout: config.GetDuration(cfg.Workers[uu.TaskType].Timeout),
			},
			db, log,
		)
		startWorker(workers, uu.TaskType, cfg.Workers[uu.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Application Workers (2) ---
	if cfg.Workers[cat.TaskType].Enabled {
		handler := cat.NewHandler(
			&cat.Config{
				Timeout: config.GetDuration(cfg.Workers[cat.TaskType].Timeout),
			},
			db, log,
		)
		startWorker(workers, cat.TaskType, cfg.Workers[cat.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ssn.TaskType].Enabled {
		var emailSender ssn.EmailSender
		if cfg.Notifications.Email.Enabled {
			sesClient, sesErr := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if sesErr != nil {
				zapLog.Fatal("failed to create SES client", zap.Error(sesErr))
			}
			emailSender = sesClient
		}

		// Only hand the handler an SMS sender when one actually exists; a
		// typed nil would defeat its nil check.
		var smsSender ssn.SMSSender
		if cfg.Notifications.SMS.Enabled {
			snsClient, snsErr := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if snsErr != nil {
				zapLog.Fatal("failed to create SNS client", zap.Error(snsErr))
			}
			smsSender = snsClient
		}

		handler := ssn.NewHandler(
			&ssn.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				Timeout:      config.GetDuration(cfg.Workers[ssn.TaskType].Timeout),
			},
			db, emailSender, smsSender, log,
		)
		startWorker(workers, ssn.TaskType, cfg.Workers[ssn.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All workers registered successfully", zap.Int("count", workers.Count()))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			status := "ready"
			code := http.StatusOK
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				status = "broker unreachable"
				code = http.StatusServiceUnavailable
			}
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Close()

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	obs.Shutdown(shutdownCtx)

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(set *camunda.WorkerSet, taskType string, wcfg config.WorkerConfig, handlerFunc camunda.JobHandlerFunc, log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	set.Start(taskType, wcfg.MaxJobsActive, time.Duration(wcfg.Timeout)*time.Millisecond, handlerFunc)
}
