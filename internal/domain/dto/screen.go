package dto

import "github.com/guttosm/screenpulse/internal/domain/models"

// ScreenFilter is one (field, operator, value) criterion from the client.
//
// Value is decoded as-is from JSON: a number, a string, or a two-element array
// for the "between" operator. Validation and coercion happen when the filter
// list is compiled, not here.
type ScreenFilter struct {
	Field    string `json:"field" example:"market_cap"`
	Operator string `json:"operator" example:"gte"`
	Value    any    `json:"value" swaggertype:"number" example:"800000000"`
}

// ScreenRequest is the body of POST /api/screen.
//
// Zero values get the screener defaults (sort by market_cap descending,
// limit 100, offset 0). An empty filter list matches every record.
type ScreenRequest struct {
	Filters []ScreenFilter `json:"filters"`
	SortBy  string         `json:"sort_by" example:"market_cap"`
	SortDir string         `json:"sort_dir" example:"desc"`
	Limit   int            `json:"limit" example:"100"`
	Offset  int            `json:"offset" example:"0"`
}

// ScreenResponse is the page returned by POST /api/screen. Total counts the
// full matched set before pagination.
type ScreenResponse struct {
	Results []models.Company `json:"results"`
	Total   int              `json:"total" example:"42"`
	Limit   int              `json:"limit" example:"100"`
	Offset  int              `json:"offset" example:"0"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password" example:"changeme"`
}

// LoginResponse carries the bearer token issued on successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// StatsResponse is the body of GET /api/admin/stats.
type StatsResponse struct {
	TotalCompanies    int `json:"total_companies" example:"5000"`
	ScreenedCompanies int `json:"screened_companies" example:"4821"`
}

// TriggerResponse acknowledges an accepted background run.
type TriggerResponse struct {
	Status  string `json:"status" example:"ingestion_started"`
	Message string `json:"message"`
}

// WatchlistResponse lists the watched tickers.
type WatchlistResponse struct {
	Tickers []string `json:"tickers"`
}

// WatchlistRecordsResponse carries the full snapshot records for the watched
// tickers.
type WatchlistRecordsResponse struct {
	Results []models.Company `json:"results"`
}

// VerifyResponse is the body of GET /api/auth/verify.
type VerifyResponse struct {
	Status string `json:"status" example:"ok"`
	User   string `json:"user" example:"admin"`
}
