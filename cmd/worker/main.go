package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"person-api/internal/handler/http/respond"
	pgRepo "person-api/internal/infra/adapter/persistence/postgres"
	"person-api/internal/infra/db"
	workerPkg "person-api/internal/infra/worker"
	"person-api/internal/observability/logging"
	"person-api/internal/resilience/circuitbreaker"
	"person-api/internal/usecase/retention"
)

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM exchange_logs LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("retention", workerConfig.Retention),
		slog.Duration("sweep_timeout", workerConfig.SweepTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// All sweep deletes flow through a single circuit breaker so the health
	// endpoints report the same breaker the job uses.
	breaker := circuitbreaker.NewDBCircuitBreaker(database)

	// Start metrics HTTP server
	startMetricsServer(ctx, logger, breaker)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, database, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	svc := setupRetentionService(breaker)

	startCronWorker(logger, svc, workerConfig, workerMetrics, healthServer)
}

// initDatabase opens the database connection and waits for migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	waitForMigrations(logger, database)
	return database
}

// setupRetentionService creates the retention service with its persistence dependencies.
// Deletes go through the circuit breaker so a struggling database degrades the
// sweep instead of hammering it.
func setupRetentionService(breaker *circuitbreaker.DBCircuitBreaker) *retention.Service {
	repo := pgRepo.NewExchangeLogRepo(breaker)
	return &retention.Service{Repo: repo}
}

// startCronWorker starts the cron scheduler and runs the retention sweep periodically.
func startCronWorker(logger *slog.Logger, svc *retention.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runSweepJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runSweepJob executes a single retention sweep with timeout and error handling.
func runSweepJob(logger *slog.Logger, svc *retention.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	metrics.RecordSweepRun("started")
	logger.Info("retention sweep started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SweepTimeout)
	defer cancel()

	stats, err := svc.Prune(ctx, cfg.Retention)
	if err != nil {
		// Mask credentials before the error reaches the log
		logger.Error("retention sweep failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordSweepRun("failure")
		metrics.RecordSweepDuration(time.Since(startTime).Seconds())
		return
	}

	// Record metrics
	metrics.RecordSweepRun("success")
	metrics.RecordSweepDuration(time.Since(startTime).Seconds())
	metrics.RecordExchangesPurged(stats.Removed)
	metrics.RecordLastSuccess()

	logger.Info("retention sweep completed",
		slog.Int64("removed", stats.Removed),
		slog.Int64("remaining", stats.Remaining),
		slog.Time("cutoff", stats.Cutoff),
		slog.Duration("duration", stats.Duration),
	)
}
