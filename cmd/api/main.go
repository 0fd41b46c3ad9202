package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"person-api/internal/common/pagination"
	"person-api/internal/config"
	pgRepo "person-api/internal/infra/adapter/persistence/postgres"
	"person-api/internal/infra/db"
	"person-api/internal/infra/genderize"
	"person-api/internal/infra/httpclient"
	"person-api/internal/observability/exchange"
	"person-api/internal/observability/logging"
	"person-api/internal/observability/tracing"
	pkgcfg "person-api/internal/pkg/config"
	"person-api/internal/resilience/circuitbreaker"

	personUC "person-api/internal/usecase/person"

	hhttp "person-api/internal/handler/http"
	hperson "person-api/internal/handler/http/person"
	"person-api/internal/handler/http/requestid"

	_ "person-api/docs" // swagger docs
)

// lookupClientName is the pool name of the default gender lookup client.
const lookupClientName = "genderize"

// @title           Person API
// @version         1.0
// @description    REST API that stores person records enriched with gender data
// @description    from an external lookup service. Every inbound and outbound
// @description    HTTP exchange is captured for diagnostics.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	serverComponents := setupServer(logger, database, version)

	runServer(logger, serverComponents, version)
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler http.Handler
	Limiter *hhttp.RateLimiter
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, version string) *ServerComponents {
	externalCfg, err := config.LoadExternalConfig()
	if err != nil {
		logger.Error("failed to load external API configuration", slog.Any("error", err))
		os.Exit(1)
	}

	clientsCfg, err := config.LoadClientsConfigFromEnv()
	if err != nil {
		logger.Error("failed to load clients configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// One circuit breaker guards every database access, so the health
	// endpoint reports the same breaker the repositories trip.
	breaker := circuitbreaker.NewDBCircuitBreaker(database)

	// Captured exchanges go to the log and to the exchange_logs table the
	// retention worker sweeps.
	exchangeRepo := pgRepo.NewExchangeLogRepo(breaker)
	sink := exchange.MultiSink(&exchange.SlogSink{Logger: logger}, exchangeRepo)

	pool := httpclient.NewPool(httpclient.Options{
		Sink:   sink,
		Logger: logger,
	})
	registerClients(logger, pool, externalCfg, clientsCfg)

	handle, err := pool.Acquire(lookupClientName)
	if err != nil {
		logger.Error("lookup client not registered", slog.Any("error", err))
		os.Exit(1)
	}
	lookupClient := genderize.New(handle, externalCfg.Retry, logger)

	personSvc := personUC.Service{
		Repo:     pgRepo.NewPersonRepo(breaker),
		Enricher: genderize.Enricher{Client: lookupClient},
	}

	// The slowest allowed request is every lookup attempt at full timeout
	// plus the backoff between attempts; headroom covers validation and
	// persistence.
	attempts := time.Duration(externalCfg.Retry.MaxAttempts + 1)
	requestTimeout := externalCfg.Timeout*attempts +
		externalCfg.Retry.Backoff*time.Duration(externalCfg.Retry.MaxAttempts) +
		5*time.Second

	rootMux := setupRoutes(database, version, personSvc, pool, lookupClient, breaker, sink, requestTimeout, logger)

	// Token bucket per client IP. Sustained rate and burst are generous:
	// the limiter is here to stop floods, not to meter normal clients.
	limiter := hhttp.NewRateLimiter(10, 20)

	handler := applyMiddleware(logger, rootMux, limiter)

	return &ServerComponents{
		Handler: handler,
		Limiter: limiter,
	}
}

// registerClients fills the pool with the default lookup client and any extra
// clients declared in the YAML clients file. Registration failures are fatal:
// the pool is immutable once the server starts serving.
func registerClients(logger *slog.Logger, pool *httpclient.Pool, externalCfg *config.ExternalConfig, clientsCfg *config.ClientsConfig) {
	if err := pool.Register(httpclient.Config{
		Name:    lookupClientName,
		BaseURL: externalCfg.BaseURL,
		Timeout: externalCfg.Timeout,
	}); err != nil {
		logger.Error("failed to register lookup client", slog.Any("error", err))
		os.Exit(1)
	}

	for _, entry := range clientsCfg.Clients {
		timeout := entry.Timeout()
		if timeout == 0 {
			timeout = externalCfg.Timeout
		}
		if err := pool.Register(httpclient.Config{
			Name:    entry.Name,
			BaseURL: entry.BaseURL,
			Timeout: timeout,
		}); err != nil {
			logger.Error("failed to register configured client",
				slog.String("client", entry.Name),
				slog.Any("error", err))
			os.Exit(1)
		}
	}
}

// setupRoutes registers all HTTP routes (public and application).
func setupRoutes(
	database *sql.DB,
	version string,
	personSvc personUC.Service,
	pool *httpclient.Pool,
	lookupClient *genderize.Client,
	breaker *circuitbreaker.DBCircuitBreaker,
	sink exchange.Sink,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *http.ServeMux {
	publicMux := http.NewServeMux()

	// Health check endpoints
	publicMux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version, Breaker: breaker})
	publicMux.HandleFunc("/health/external", hhttp.NewExternalHealthHandler(pool, lookupClientName, lookupClient).Health)
	publicMux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	publicMux.Handle("/live", &hhttp.LiveHandler{})
	publicMux.Handle("/metrics", hhttp.MetricsHandler())

	// Swagger UI, on by default but switchable off for hardened deployments.
	swagger := pkgcfg.LoadBool("SWAGGER_ENABLED", true)
	for _, warning := range swagger.Warnings {
		logger.Warn("Configuration fallback applied",
			slog.String("field", "SwaggerEnabled"),
			slog.String("warning", warning))
	}
	if swagger.Value {
		publicMux.Handle("/swagger/", httpSwagger.WrapHandler)
	}

	// Load pagination configuration
	paginationCfg := pagination.LoadFromEnv()

	appMux := http.NewServeMux()
	hperson.Register(appMux, personSvc, paginationCfg, logger)

	// The person routes get their own inner chain: recovery turns panics
	// into well-formed 500s, the timeout bounds the slowest lookup, and the
	// capture middleware records the full exchange, timeouts included.
	// Recovery sits innermost so a panic cannot escape the timeout's
	// handler goroutine.
	app := hhttp.Recover(logger)(appMux)
	app = hhttp.Timeout(requestTimeout)(app)
	app = hhttp.CaptureExchanges(sink)(app)

	rootMux := http.NewServeMux()
	rootMux.Handle("/health", publicMux)
	rootMux.Handle("/health/external", publicMux)
	rootMux.Handle("/ready", publicMux)
	rootMux.Handle("/live", publicMux)
	rootMux.Handle("/metrics", publicMux)
	if swagger.Value {
		rootMux.Handle("/swagger/", publicMux)
	}
	rootMux.Handle("/", app)

	return rootMux
}

// applyMiddleware wraps the handler with the server-wide middleware chain.
// Middleware order: Request ID → Tracing → IP Rate Limit → Recovery →
// Logging → Input Validation → Body Limit → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler, limiter *hhttp.RateLimiter) http.Handler {
	middlewareChain := handler

	// Apply in reverse order (innermost to outermost)
	middlewareChain = hhttp.MetricsMiddleware(middlewareChain)
	middlewareChain = hhttp.LimitRequestBody(1 << 20)(middlewareChain) // 1MB limit
	middlewareChain = hhttp.InputValidation()(middlewareChain)
	middlewareChain = hhttp.Logging(logger)(middlewareChain)
	middlewareChain = hhttp.Recover(logger)(middlewareChain)
	middlewareChain = limiter.Limit(middlewareChain)
	middlewareChain = tracing.Middleware(middlewareChain)
	middlewareChain = requestid.Middleware(middlewareChain)

	return middlewareChain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	// Create a context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Evict idle rate limiter clients in the background
	if components.Limiter != nil {
		go hhttp.StartRateLimitCleanup(ctx, components.Limiter, hhttp.DefaultCleanupInterval)
	}

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", ":8080"),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Cancel background goroutines (rate limit cleanup)
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
