package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/screenpulse/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, RateLimiter).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the /api routes; everything except login requires a bearer token.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API ──────────────────────────────────────
	router.POST("/api/auth/login", handler.Login)

	authed := router.Group("/api", middleware.RequireAuth(handler.auth.JWTSecret))
	{
		authed.GET("/auth/verify", handler.Verify)

		authed.POST("/screen", handler.Screen)
		authed.GET("/fields", handler.Fields)

		authed.GET("/watchlist", handler.Watchlist)
		authed.GET("/watchlist/records", handler.WatchlistRecords)
		authed.POST("/watchlist/:ticker", handler.AddWatchlistTicker)
		authed.DELETE("/watchlist/:ticker", handler.RemoveWatchlistTicker)

		admin := authed.Group("/admin")
		{
			admin.GET("/stats", handler.Stats)
			admin.POST("/ingest", handler.Ingest)
			admin.POST("/update-quotes", handler.UpdateQuotes)
			admin.GET("/ingestion-progress", handler.IngestionProgress)
		}
	}

	return router
}
