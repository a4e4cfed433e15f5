package main

//
//  @title           screenpulse API
//  @version         1.0
//  @description     Stock screener backend: FMP ingestion, snapshot queries, and watchlist.
//  @termsOfService  https://github.com/guttosm/screenpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/screenpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @securityDefinitions.apikey BearerAuth
//  @in              header
//  @name            Authorization
//
//  @tag.name        auth
//  @tag.description Login and token verification
//
//  @tag.name        screen
//  @tag.description Filtering and sorting over the published snapshot
//
//  @tag.name        admin
//  @tag.description Ingestion triggers, progress, and statistics
//
//  @tag.name        watchlist
//  @tag.description Watched tickers
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/screenpulse/config"
	_ "github.com/guttosm/screenpulse/docs" // swagger docs
	"github.com/guttosm/screenpulse/internal/app"
	"github.com/guttosm/screenpulse/internal/logger"
	"github.com/guttosm/screenpulse/internal/scheduler"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - stop (func()): Callback to stop background components before the server exits.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, stop func(), cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	if stop != nil {
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the screenpulse application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API serving screens from the published snapshot.
//   - ingest: Runs one full ingestion pass in the foreground and exits.
//
// Flags:
//   - --mode: Execution mode ("api" or "ingest"). Default: "api".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or ingest")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		// One full refresh in the foreground, then exit
		logger.L().Info().Msg("running full ingestion")

		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer cleanup()

		if err := a.Pipeline.RunFull(ctx); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		// Scheduled background refreshes, when enabled
		var stopScheduler func()
		if config.AppConfig.Schedule.Enabled {
			sched := scheduler.New(*logger.L())
			if err := sched.AddJob(config.AppConfig.Schedule.IngestCron, scheduler.IngestJob{Pipeline: a.Pipeline}); err != nil {
				logger.L().Fatal().Err(err).Msg("invalid ingest schedule")
			}
			if err := sched.AddJob(config.AppConfig.Schedule.QuotesCron, scheduler.QuotesJob{Pipeline: a.Pipeline}); err != nil {
				logger.L().Fatal().Err(err).Msg("invalid quotes schedule")
			}
			sched.Start()
			stopScheduler = sched.Stop
		}

		server := startServer(a.Router, *port)
		gracefulShutdown(ctx, server, stopScheduler, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
