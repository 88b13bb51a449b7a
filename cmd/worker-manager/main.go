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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pickup-workers/internal/common/camunda"
	"pickup-workers/internal/common/config"
	"pickup-workers/internal/common/database"
	"pickup-workers/internal/common/logger"
	"pickup-workers/internal/common/observability"
	"pickup-workers/pkg/registry"

	// Booking Workers (2)
	cr "pickup-workers/internal/workers/booking/calculate-refund"
	sn "pickup-workers/internal/workers/booking/send-notification"

	// Garage Workers (3)
	cgs "pickup-workers/internal/workers/garage/calculate-garage-score"
	rg "pickup-workers/internal/workers/garage/rank-garages"
	vs "pickup-workers/internal/workers/garage/validate-subscription"

	// Data Access Workers (2)
	qe "pickup-workers/internal/workers/data-access/query-elasticsearch"
	qp "pickup-workers/internal/workers/data-access/query-postgresql"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	tracer := observability.NewTracer("worker-manager", os.Getenv("JAEGER_COLLECTOR_ENDPOINT"))
	defer tracer.Shutdown()

	ctx := context.Background()

	// --- Validate activity registry ---
	if cfg.Registry.Path != "" {
		reg, err := registry.LoadRegistry(cfg.Registry.Path)
		if err != nil {
			zapLog.Warn("activity registry not loaded", zap.Error(err))
		} else {
			zapLog.Info("activity registry loaded",
				zap.String("version", reg.Version),
				zap.Int("activities", len(reg.Activities)),
			)
		}
	}

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
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
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- START: Register ALL 7 Workers ---

	// --- 1. Garage Workers (3) ---
	if cfg.Workers[cgs.TaskType].Enabled {
		handler := cgs.NewHandler(
			&cgs.Config{
				StatsCacheTTL: time.Duration(cfg.Ranking.StatsCacheTTL) * time.Second,
				Timeout:       time.Duration(cfg.Workers[cgs.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, tracer,cgs.TaskType, cfg.Workers[cgs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rg.TaskType].Enabled {
		handler := rg.NewHandler(
			&rg.Config{
				MaxResults: cfg.Ranking.MaxResults,
				Timeout:    time.Duration(cfg.Workers[rg.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, tracer,rg.TaskType, cfg.Workers[rg.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[vs.TaskType].Enabled {
		handler := vs.NewHandler(
			&vs.Config{
				Timeout: time.Duration(cfg.Workers[vs.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, tracer,vs.TaskType, cfg.Workers[vs.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Booking Workers (2) ---
	if cfg.Workers[cr.TaskType].Enabled {
		handler := cr.NewHandler(
			&cr.Config{
				Timeout: time.Duration(cfg.Workers[cr.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, tracer,cr.TaskType, cfg.Workers[cr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sn.TaskType].Enabled {
		handler, err := sn.NewHandler(
			&sn.Config{
				EmailEnabled:     cfg.Notifications.Email.Enabled,
				SMSEnabled:       cfg.Notifications.SMS.Enabled,
				FromEmail:        cfg.Notifications.Email.FromEmail,
				AWSRegion:        cfg.Notifications.AWS.Region,
				TemplateRegistry: cfg.Notifications.TemplateRegistry,
				Timeout:          time.Duration(cfg.Workers[sn.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		startWorker(zeebeClient, tracer,sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Data Access Workers (2) ---
	if cfg.Workers[qp.TaskType].Enabled {
		handler := qp.NewHandler(
			&qp.Config{
				Timeout: time.Duration(cfg.Workers[qp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, tracer,qp.TaskType, cfg.Workers[qp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[qe.TaskType].Enabled {
		handler := qe.NewHandler(
			&qe.Config{
				Timeout: time.Duration(cfg.Workers[qe.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, tracer,qe.TaskType, cfg.Workers[qe.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 7 workers registered successfully")

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
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
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

	closed := make(chan error, 1)
	go func() { closed <- camundaClient.Close() }()
	select {
	case err := <-closed:
		if err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		zapLog.Warn("Timed out waiting for Zeebe client to close")
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, tracer *observability.Tracer, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	traced := func(jobClient worker.JobClient, job entities.Job) {
		_, span := tracer.StartJobSpan(context.Background(), taskType, job.Key)
		defer span.End()
		handlerFunc(jobClient, job)
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(traced).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
