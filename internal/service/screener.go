// Package service holds the business logic between the HTTP handlers and the
// snapshot/storage layers.
package service

import (
	"context"
	"strings"

	"github.com/guttosm/screenpulse/internal/domain/dto"
	"github.com/guttosm/screenpulse/internal/domain/models"
	"github.com/guttosm/screenpulse/internal/fields"
	"github.com/guttosm/screenpulse/internal/screener"
	"github.com/guttosm/screenpulse/internal/snapshot"
	"github.com/guttosm/screenpulse/internal/storage"
)

// Screen defaults applied to zero-valued request fields.
const (
	defaultSortBy  = "market_cap"
	defaultSortDir = "desc"
	defaultLimit   = 100
	maxLimit       = 1000
)

// ScreenerService defines business logic for querying the published snapshot
// and managing the watchlist. This decouples HTTP handlers from the snapshot
// store and data access.
type ScreenerService interface {
	Screen(ctx context.Context, req dto.ScreenRequest) (*dto.ScreenResponse, error)
	FieldDefinitions() map[string]fields.Definition
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	Watchlist(ctx context.Context) ([]string, error)
	WatchlistRecords(ctx context.Context) ([]models.Company, error)
	AddToWatchlist(ctx context.Context, ticker string) error
	RemoveFromWatchlist(ctx context.Context, ticker string) error
}

type screenerService struct {
	store *snapshot.Store
	repo  storage.SnapshotRepository
}

func NewScreenerService(store *snapshot.Store, repo storage.SnapshotRepository) ScreenerService {
	return &screenerService{store: store, repo: repo}
}

// Screen validates and applies defaults to the request, then runs it against
// the currently published snapshot. All filters and the sort are evaluated
// against the same snapshot; a concurrent publish never mixes into a page.
func (s *screenerService) Screen(ctx context.Context, req dto.ScreenRequest) (*dto.ScreenResponse, error) {
	if req.SortBy == "" {
		req.SortBy = defaultSortBy
	}
	switch req.SortDir {
	case "":
		req.SortDir = defaultSortDir
	case "asc", "desc":
	default:
		return nil, &screener.ValidationError{Field: "sort_dir", Msg: "must be asc or desc"}
	}
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	pred, err := screener.Compile(req.Filters)
	if err != nil {
		return nil, err
	}

	results, total, err := screener.Run(s.store.Current(), pred, req.SortBy, req.SortDir, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ScreenResponse{
		Results: results,
		Total:   total,
		Limit:   req.Limit,
		Offset:  req.Offset,
	}, nil
}

// FieldDefinitions exposes the screener field registry for client-side filter
// builders.
func (s *screenerService) FieldDefinitions() map[string]fields.Definition {
	return fields.Definitions()
}

// Stats reports the size of the known universe against the records that made
// it into the published snapshot.
func (s *screenerService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	total, err := s.repo.CountUniverse()
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalCompanies:    total,
		ScreenedCompanies: s.store.Current().Count(),
	}, nil
}

func (s *screenerService) Watchlist(ctx context.Context) ([]string, error) {
	return s.repo.WatchlistTickers()
}

// WatchlistRecords resolves the watched tickers against the current snapshot.
// Watched tickers absent from the snapshot are simply not returned.
func (s *screenerService) WatchlistRecords(ctx context.Context) ([]models.Company, error) {
	tickers, err := s.repo.WatchlistTickers()
	if err != nil {
		return nil, err
	}
	snap := s.store.Current()
	byTicker := make(map[string]*models.Company, snap.Count())
	for i := range snap.Records {
		byTicker[snap.Records[i].Ticker] = &snap.Records[i]
	}
	records := make([]models.Company, 0, len(tickers))
	for _, t := range tickers {
		if c, ok := byTicker[t]; ok {
			records = append(records, *c)
		}
	}
	return records, nil
}

func (s *screenerService) AddToWatchlist(ctx context.Context, ticker string) error {
	t, err := normalizeTicker(ticker)
	if err != nil {
		return err
	}
	return s.repo.AddWatchlistTicker(t)
}

func (s *screenerService) RemoveFromWatchlist(ctx context.Context, ticker string) error {
	t, err := normalizeTicker(ticker)
	if err != nil {
		return err
	}
	return s.repo.RemoveWatchlistTicker(t)
}

func normalizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return "", &screener.ValidationError{Field: "ticker", Msg: "must not be empty"}
	}
	return t, nil
}
