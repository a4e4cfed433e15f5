package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/screenpulse/internal/domain/dto"
	"github.com/guttosm/screenpulse/internal/ingestion"
	"github.com/guttosm/screenpulse/internal/middleware"
	"github.com/guttosm/screenpulse/internal/progress"
	"github.com/guttosm/screenpulse/internal/screener"
	"github.com/guttosm/screenpulse/internal/service"
)

// AuthSettings carries what the login and verify endpoints need.
type AuthSettings struct {
	AppPassword string
	JWTSecret   string
	TokenTTL    time.Duration
}

// Handler provides the HTTP handlers for the screener endpoints.
//
// Responsibilities:
//   - Validate incoming requests and translate them to service calls
//   - Trigger ingestion runs and surface their progress
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc      service.ScreenerService
	pipeline *ingestion.Pipeline
	tracker  *progress.Tracker
	auth     AuthSettings
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.ScreenerService, pipeline *ingestion.Pipeline, tracker *progress.Tracker, auth AuthSettings) *Handler {
	return &Handler{svc: svc, pipeline: pipeline, tracker: tracker, auth: auth}
}

// Login godoc
// @Summary      Log in with the admin password
// @Description  Exchanges the shared admin password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      401   {object}  dto.ErrorResponse  "Unauthorized"
// @Router       /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}
	if h.auth.AppPassword == "" || req.Password != h.auth.AppPassword {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("invalid password", nil))
		return
	}
	token, err := middleware.IssueToken(h.auth.JWTSecret, h.auth.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to issue token", err))
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, TokenType: "bearer"})
}

// Verify godoc
// @Summary      Verify the bearer token
// @Description  Returns ok when the presented token is valid
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.VerifyResponse  "Success"
// @Failure      401  {object}  dto.ErrorResponse   "Unauthorized"
// @Security     BearerAuth
// @Router       /api/auth/verify [get]
func (h *Handler) Verify(c *gin.Context) {
	// The auth middleware already validated the token.
	c.JSON(http.StatusOK, dto.VerifyResponse{Status: "ok", User: "admin"})
}

// Screen godoc
// @Summary      Screen companies
// @Description  Filters, sorts, and paginates the published snapshot
// @Tags         screen
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ScreenRequest  true  "Filter criteria"
// @Success      200   {object}  dto.ScreenResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse   "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse   "Internal Error"
// @Security     BearerAuth
// @Router       /api/screen [post]
func (h *Handler) Screen(c *gin.Context) {
	var req dto.ScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}

	resp, err := h.svc.Screen(c.Request.Context(), req)
	if err != nil {
		var verr *screener.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid screen request", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("screen failed", err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Fields godoc
// @Summary      List screener fields
// @Description  Returns the filterable/sortable fields with labels and formats
// @Tags         screen
// @Produce      json
// @Success      200  {object}  map[string]fields.Definition  "Success"
// @Security     BearerAuth
// @Router       /api/fields [get]
func (h *Handler) Fields(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.FieldDefinitions())
}

// Stats godoc
// @Summary      Snapshot statistics
// @Description  Reports the universe size and the screened record count
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.StatsResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Security     BearerAuth
// @Router       /api/admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to compute stats", err))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Ingest godoc
// @Summary      Trigger a full ingestion run
// @Description  Starts a background full refresh; rejected while another run is active
// @Tags         admin
// @Produce      json
// @Success      202  {object}  dto.TriggerResponse  "Accepted"
// @Failure      409  {object}  dto.ErrorResponse    "Already Running"
// @Security     BearerAuth
// @Router       /api/admin/ingest [post]
func (h *Handler) Ingest(c *gin.Context) {
	// The run outlives the request; never tie it to the request context.
	if err := h.pipeline.StartFull(context.Background()); err != nil {
		if errors.Is(err, ingestion.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, dto.NewErrorResponse("an ingestion run is already active", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to start ingestion", err))
		return
	}
	c.JSON(http.StatusAccepted, dto.TriggerResponse{Status: "ingestion_started", Message: "full refresh running in background"})
}

// UpdateQuotes godoc
// @Summary      Trigger a quote refresh
// @Description  Starts a background quote update; rejected while another run is active
// @Tags         admin
// @Produce      json
// @Success      202  {object}  dto.TriggerResponse  "Accepted"
// @Failure      409  {object}  dto.ErrorResponse    "Already Running"
// @Security     BearerAuth
// @Router       /api/admin/update-quotes [post]
func (h *Handler) UpdateQuotes(c *gin.Context) {
	if err := h.pipeline.StartQuotes(context.Background()); err != nil {
		if errors.Is(err, ingestion.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, dto.NewErrorResponse("an ingestion run is already active", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to start quote update", err))
		return
	}
	c.JSON(http.StatusAccepted, dto.TriggerResponse{Status: "quote_update_started", Message: "quote refresh running in background"})
}

// IngestionProgress godoc
// @Summary      Ingestion progress
// @Description  Returns the state of the running (or last finished) ingestion job
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.Progress  "Success"
// @Security     BearerAuth
// @Router       /api/admin/ingestion-progress [get]
func (h *Handler) IngestionProgress(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Read())
}

// Watchlist godoc
// @Summary      List watched tickers
// @Tags         watchlist
// @Produce      json
// @Success      200  {object}  dto.WatchlistResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Security     BearerAuth
// @Router       /api/watchlist [get]
func (h *Handler) Watchlist(c *gin.Context) {
	tickers, err := h.svc.Watchlist(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to load watchlist", err))
		return
	}
	if tickers == nil {
		tickers = []string{}
	}
	c.JSON(http.StatusOK, dto.WatchlistResponse{Tickers: tickers})
}

// WatchlistRecords godoc
// @Summary      Watched tickers with their snapshot records
// @Tags         watchlist
// @Produce      json
// @Success      200  {object}  dto.WatchlistRecordsResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse             "Internal Error"
// @Security     BearerAuth
// @Router       /api/watchlist/records [get]
func (h *Handler) WatchlistRecords(c *gin.Context) {
	records, err := h.svc.WatchlistRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to load watchlist records", err))
		return
	}
	c.JSON(http.StatusOK, dto.WatchlistRecordsResponse{Results: records})
}

// AddWatchlistTicker godoc
// @Summary      Watch a ticker
// @Tags         watchlist
// @Produce      json
// @Param        ticker  path      string  true  "Ticker symbol"  example(AAPL)
// @Success      204     "No Content"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Security     BearerAuth
// @Router       /api/watchlist/{ticker} [post]
func (h *Handler) AddWatchlistTicker(c *gin.Context) {
	if err := h.svc.AddToWatchlist(c.Request.Context(), c.Param("ticker")); err != nil {
		var verr *screener.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid ticker", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to update watchlist", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveWatchlistTicker godoc
// @Summary      Unwatch a ticker
// @Tags         watchlist
// @Produce      json
// @Param        ticker  path      string  true  "Ticker symbol"  example(AAPL)
// @Success      204     "No Content"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Security     BearerAuth
// @Router       /api/watchlist/{ticker} [delete]
func (h *Handler) RemoveWatchlistTicker(c *gin.Context) {
	if err := h.svc.RemoveFromWatchlist(c.Request.Context(), c.Param("ticker")); err != nil {
		var verr *screener.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid ticker", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to update watchlist", err))
		return
	}
	c.Status(http.StatusNoContent)
}
