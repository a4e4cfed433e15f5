package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/screenpulse/internal/domain/dto"
	"github.com/guttosm/screenpulse/internal/domain/models"
	"github.com/guttosm/screenpulse/internal/screener"
	"github.com/guttosm/screenpulse/internal/snapshot"
)

type stubRepo struct {
	universeCount int
	countErr      error
	watchlist     []string
	added         []string
	removed       []string
}

func (r *stubRepo) SaveSnapshot(snap *models.Snapshot) error { return nil }
func (r *stubRepo) LoadLatest() (*models.Snapshot, error)    { return nil, nil }
func (r *stubRepo) ReplaceUniverse(tickers []string) error   { return nil }
func (r *stubRepo) CountUniverse() (int, error)              { return r.universeCount, r.countErr }
func (r *stubRepo) WatchlistTickers() ([]string, error)      { return r.watchlist, nil }

func (r *stubRepo) AddWatchlistTicker(ticker string) error {
	r.added = append(r.added, ticker)
	return nil
}

func (r *stubRepo) RemoveWatchlistTicker(ticker string) error {
	r.removed = append(r.removed, ticker)
	return nil
}

func f64(v float64) *float64 { return &v }

func newTestService(records ...models.Company) (ScreenerService, *stubRepo) {
	store := snapshot.NewStore()
	if len(records) > 0 {
		store.Publish(&models.Snapshot{Version: 1, CreatedAt: time.Now(), Records: records})
	}
	repo := &stubRepo{}
	return NewScreenerService(store, repo), repo
}

func TestScreen_DefaultsToMarketCapDescending(t *testing.T) {
	svc, _ := newTestService(
		models.Company{Ticker: "SMALL", MarketCap: f64(5e8)},
		models.Company{Ticker: "BIG", MarketCap: f64(1.5e9)},
		models.Company{Ticker: "MID", MarketCap: f64(9e8)},
	)

	resp, err := svc.Screen(context.Background(), dto.ScreenRequest{})
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if resp.Total != 3 || resp.Limit != 100 || resp.Offset != 0 {
		t.Fatalf("page meta: %+v", resp)
	}
	got := []string{resp.Results[0].Ticker, resp.Results[1].Ticker, resp.Results[2].Ticker}
	want := []string{"BIG", "MID", "SMALL"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestScreen_FiltersAndPaginates(t *testing.T) {
	svc, _ := newTestService(
		models.Company{Ticker: "SMALL", MarketCap: f64(5e8)},
		models.Company{Ticker: "BIG", MarketCap: f64(1.5e9)},
		models.Company{Ticker: "MID", MarketCap: f64(9e8)},
	)

	resp, err := svc.Screen(context.Background(), dto.ScreenRequest{
		Filters: []dto.ScreenFilter{{Field: "market_cap", Operator: "gte", Value: 8e8}},
		Limit:   1,
		Offset:  1,
	})
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if resp.Total != 2 || len(resp.Results) != 1 || resp.Results[0].Ticker != "MID" {
		t.Fatalf("page: total=%d results=%+v", resp.Total, resp.Results)
	}
}

func TestScreen_ValidationErrors(t *testing.T) {
	svc, _ := newTestService(models.Company{Ticker: "AAA", MarketCap: f64(1)})

	tests := []struct {
		name string
		req  dto.ScreenRequest
	}{
		{"bad sort dir", dto.ScreenRequest{SortDir: "sideways"}},
		{"unknown sort field", dto.ScreenRequest{SortBy: "nope"}},
		{"unknown filter field", dto.ScreenRequest{Filters: []dto.ScreenFilter{{Field: "nope", Operator: "gt", Value: 1.0}}}},
		{"bad operator", dto.ScreenRequest{Filters: []dto.ScreenFilter{{Field: "market_cap", Operator: "like", Value: 1.0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Screen(context.Background(), tt.req)
			var verr *screener.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
		})
	}
}

func TestScreen_LimitClamped(t *testing.T) {
	svc, _ := newTestService(models.Company{Ticker: "AAA", MarketCap: f64(1)})
	resp, err := svc.Screen(context.Background(), dto.ScreenRequest{Limit: 100000})
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if resp.Limit != maxLimit {
		t.Fatalf("limit=%d, want clamp to %d", resp.Limit, maxLimit)
	}
}

func TestStats(t *testing.T) {
	svc, repo := newTestService(
		models.Company{Ticker: "AAA"},
		models.Company{Ticker: "BBB"},
	)
	repo.universeCount = 10

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalCompanies != 10 || stats.ScreenedCompanies != 2 {
		t.Fatalf("stats: %+v", stats)
	}

	repo.countErr = errors.New("db down")
	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatal("expected stats to propagate repo error")
	}
}

func TestFieldDefinitions(t *testing.T) {
	svc, _ := newTestService()
	defs := svc.FieldDefinitions()
	if len(defs) == 0 {
		t.Fatal("no field definitions")
	}
	mc, ok := defs["market_cap"]
	if !ok || mc.Type != "number" {
		t.Fatalf("market_cap definition: %+v ok=%v", mc, ok)
	}
}

func TestWatchlist_NormalizesTickers(t *testing.T) {
	svc, repo := newTestService()

	if err := svc.AddToWatchlist(context.Background(), "  aapl "); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(repo.added) != 1 || repo.added[0] != "AAPL" {
		t.Fatalf("added: %v", repo.added)
	}

	if err := svc.RemoveFromWatchlist(context.Background(), "msft"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.removed) != 1 || repo.removed[0] != "MSFT" {
		t.Fatalf("removed: %v", repo.removed)
	}

	var verr *screener.ValidationError
	if err := svc.AddToWatchlist(context.Background(), "   "); !errors.As(err, &verr) {
		t.Fatalf("blank ticker: %v", err)
	}
}

func TestWatchlistRecords_ResolvesAgainstSnapshot(t *testing.T) {
	svc, repo := newTestService(
		models.Company{Ticker: "AAPL", MarketCap: f64(3e12)},
		models.Company{Ticker: "MSFT", MarketCap: f64(2.8e12)},
	)
	// GONE is watched but not in the snapshot.
	repo.watchlist = []string{"AAPL", "GONE"}

	records, err := svc.WatchlistRecords(context.Background())
	if err != nil {
		t.Fatalf("watchlist records: %v", err)
	}
	if len(records) != 1 || records[0].Ticker != "AAPL" {
		t.Fatalf("records: %+v", records)
	}
}
