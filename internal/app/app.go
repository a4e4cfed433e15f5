package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/screenpulse/config"
	"github.com/guttosm/screenpulse/internal/api"
	"github.com/guttosm/screenpulse/internal/fmp"
	"github.com/guttosm/screenpulse/internal/ingestion"
	"github.com/guttosm/screenpulse/internal/logger"
	"github.com/guttosm/screenpulse/internal/progress"
	"github.com/guttosm/screenpulse/internal/service"
	"github.com/guttosm/screenpulse/internal/snapshot"
	"github.com/guttosm/screenpulse/internal/storage"
)

// App bundles the wired components the entrypoint needs: the HTTP router for
// serving and the pipeline for CLI/scheduled runs.
type App struct {
	Router   *gin.Engine
	Pipeline *ingestion.Pipeline
}

// InitializeApp sets up all application dependencies and returns the wired
// App, a cleanup function for graceful shutdown, and any error encountered
// during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (SnapshotRepository).
//   - Restores the last persisted snapshot into the in-memory store.
//   - Wires the upstream client, ingestion pipeline, and progress tracker.
//   - Creates the HTTP handler layer and configures the Gin router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*App, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Repository layer (responsible for DB access)
	repo := storage.NewSnapshotRepository(db)

	// In-memory snapshot store, restored from the last persisted snapshot so
	// a restart does not serve an empty screener.
	store := snapshot.NewStore()
	if snap, err := repo.LoadLatest(); err != nil {
		logger.L().Warn().Err(err).Msg("snapshot restore failed, starting empty")
	} else if snap != nil {
		store.Publish(snap)
		logger.L().Info().
			Int64("version", snap.Version).
			Int("records", snap.Count()).
			Msg("snapshot restored from database")
	}

	// Ingestion pipeline against the upstream provider
	tracker := progress.NewTracker()
	client := fmp.NewHTTPClient(cfg.FMP.BaseURL, cfg.FMP.APIKey)
	pipeline := ingestion.New(client, store, repo, tracker, ingestion.Config{
		Workers:         cfg.Ingest.Workers,
		TargetExchanges: cfg.Ingest.TargetExchanges,
	})

	// Service layer (business logic)
	svc := service.NewScreenerService(store, repo)

	// HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, pipeline, tracker, api.AuthSettings{
		AppPassword: cfg.Auth.AppPassword,
		JWTSecret:   cfg.Auth.JWTSecret,
		TokenTTL:    time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
	})

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return &App{Router: router, Pipeline: pipeline}, cleanup, nil
}
