// Package ingestion orchestrates the background jobs that (re)populate the
// screener snapshot from the upstream provider: the full-refresh pipeline and
// the lighter quote updater.
//
// Exactly one run of either kind may be active at a time. Both variants
// build a complete new snapshot off to the side, persist it, and publish it
// with one atomic swap; queries keep serving the previous snapshot throughout.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/screenpulse/internal/domain/models"
	"github.com/guttosm/screenpulse/internal/fmp"
	"github.com/guttosm/screenpulse/internal/logger"
	"github.com/guttosm/screenpulse/internal/progress"
	"github.com/guttosm/screenpulse/internal/snapshot"
	"github.com/guttosm/screenpulse/internal/storage"
)

// ErrAlreadyRunning signals that a trigger arrived while a run was active.
// Triggers are rejected, never queued.
var ErrAlreadyRunning = errors.New("an ingestion run is already active")

// historyYears is how many annual periods are fetched per company: the
// current one plus five for averages, with one spare.
const historyYears = 7

// beforePublish runs right before the snapshot swap; tests override it to
// widen the publish window.
var beforePublish = func() {}

// Pipeline owns the ingestion state machine.
type Pipeline struct {
	client  fmp.Client
	store   *snapshot.Store
	repo    storage.SnapshotRepository
	tracker *progress.Tracker
	workers int
	targets map[string]bool
	runFlag chan struct{} // capacity 1; holding the token = run in flight
}

// Config carries the pipeline's tunables.
type Config struct {
	// Workers bounds concurrent upstream fetches; sized to respect the
	// provider's rate limit.
	Workers int
	// TargetExchanges restricts the screening universe. Empty means all.
	TargetExchanges []string
}

// New wires a pipeline. The same run lock guards full refreshes and quote
// updates, since both publish snapshots.
func New(client fmp.Client, store *snapshot.Store, repo storage.SnapshotRepository, tracker *progress.Tracker, cfg Config) *Pipeline {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}
	targets := make(map[string]bool, len(cfg.TargetExchanges))
	for _, e := range cfg.TargetExchanges {
		targets[e] = true
	}
	p := &Pipeline{
		client:  client,
		store:   store,
		repo:    repo,
		tracker: tracker,
		workers: workers,
		targets: targets,
		runFlag: make(chan struct{}, 1),
	}
	return p
}

// tryAcquire takes the run token without blocking.
func (p *Pipeline) tryAcquire() bool {
	select {
	case p.runFlag <- struct{}{}:
		return true
	default:
		return false
	}
}

func (p *Pipeline) release() {
	<-p.runFlag
}

// StartFull accepts a full-refresh trigger and runs it in the background.
// Returns ErrAlreadyRunning when a run of either kind is active.
func (p *Pipeline) StartFull(ctx context.Context) error {
	if !p.tryAcquire() {
		return ErrAlreadyRunning
	}
	p.tracker.Begin()
	go func() {
		defer p.release()
		p.runFull(ctx)
	}()
	return nil
}

// RunFull executes one full refresh synchronously (CLI and scheduler entry).
func (p *Pipeline) RunFull(ctx context.Context) error {
	if !p.tryAcquire() {
		return ErrAlreadyRunning
	}
	defer p.release()
	p.tracker.Begin()
	return p.runFull(ctx)
}

// runFull drives the state machine with the run token already held:
// FetchingList → FetchingFundamentals → ComputingDerived → Publishing →
// Complete, or Failed on an unrecoverable error.
func (p *Pipeline) runFull(ctx context.Context) error {
	log := logger.L()
	start := time.Now()

	// FetchingList: the universe fetch failing is fatal for the whole run.
	universe, err := p.fetchUniverse(ctx)
	if err != nil {
		log.Error().Err(err).Msg("ingestion failed fetching stock list")
		p.tracker.Fail(fmt.Errorf("stock list: %w", err))
		return err
	}
	p.tracker.SetTotal(len(universe))
	log.Info().Int("companies", len(universe)).Msg("ingestion universe resolved")

	tickers := make([]string, len(universe))
	for i, st := range universe {
		tickers[i] = st.Symbol
	}
	if err := p.repo.ReplaceUniverse(tickers); err != nil {
		log.Error().Err(err).Msg("ingestion failed persisting universe")
		p.tracker.Fail(fmt.Errorf("persist universe: %w", err))
		return err
	}

	// FetchingFundamentals: bounded worker pool; a single company's failure
	// is counted and skipped, never fatal.
	p.tracker.SetPhase(models.PhaseFetchingFundamentals)
	fetched := p.fetchAll(ctx, universe)
	if ctx.Err() != nil {
		p.tracker.Fail(ctx.Err())
		return ctx.Err()
	}

	// ComputingDerived: pure computation over the fetched history.
	p.tracker.SetPhase(models.PhaseComputingDerived)
	records := make([]models.Company, 0, len(fetched))
	for _, f := range fetched {
		records = append(records, buildRecord(f))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Ticker < records[j].Ticker })

	// Publishing: persist first, then swap. A crash after persist but before
	// the swap is recovered by the startup restore.
	p.tracker.SetPhase(models.PhasePublishing)
	snap := &models.Snapshot{
		Version:   p.store.NextVersion(),
		CreatedAt: time.Now().UTC(),
		Records:   records,
	}
	if err := p.repo.SaveSnapshot(snap); err != nil {
		log.Error().Err(err).Msg("ingestion failed persisting snapshot")
		p.tracker.Fail(fmt.Errorf("persist snapshot: %w", err))
		return err
	}
	beforePublish()
	p.store.Publish(snap)

	p.tracker.Complete()
	prog := p.tracker.Read()
	log.Info().
		Int64("version", snap.Version).
		Int("records", len(records)).
		Int("errors", prog.Errors).
		Dur("elapsed", time.Since(start)).
		Msg("ingestion complete")
	return nil
}

// fetchUniverse pulls the stock list and filters it to common stocks on the
// configured target exchanges.
func (p *Pipeline) fetchUniverse(ctx context.Context) ([]fmp.ListedStock, error) {
	all, err := p.client.StockList(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]fmp.ListedStock, 0, len(all))
	for _, st := range all {
		if st.Symbol == "" || st.ExchangeShortName == "" {
			continue
		}
		if st.Type != "" && st.Type != "stock" {
			continue
		}
		if len(p.targets) > 0 && !p.targets[st.ExchangeShortName] {
			continue
		}
		filtered = append(filtered, st)
	}
	return filtered, nil
}

// fetchAll runs the bounded fetch pool and returns the successfully fetched
// fundamentals. Progress and error counters advance per company.
func (p *Pipeline) fetchAll(ctx context.Context, universe []fmp.ListedStock) []*fundamentals {
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, p.workers)
	results := make([]*fundamentals, len(universe))

	for i, st := range universe {
		idx := i
		stock := st
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			f, err := p.fetchCompany(gctx, stock)
			p.tracker.Advance(stock.Symbol)
			if err != nil {
				p.tracker.RecordError(stock.Symbol, err)
				logger.L().Warn().Str("ticker", stock.Symbol).Err(err).Msg("company fetch failed")
				return nil
			}
			if f != nil {
				results[idx] = f
			}
			return nil
		})
	}
	_ = g.Wait()

	fetched := make([]*fundamentals, 0, len(results))
	for _, f := range results {
		if f != nil {
			fetched = append(fetched, f)
		}
	}
	return fetched
}

// fetchCompany pulls profile, income statements, and key metrics for one
// company. Any panic escaping the upstream client is converted into a counted
// error at this boundary so it cannot take down the run.
func (p *Pipeline) fetchCompany(ctx context.Context, stock fmp.ListedStock) (f *fundamentals, err error) {
	defer func() {
		if r := recover(); r != nil {
			f = nil
			err = fmt.Errorf("panic fetching %s: %v", stock.Symbol, r)
		}
	}()

	profile, err := p.client.Profile(ctx, stock.Symbol)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	income, err := p.client.IncomeStatements(ctx, stock.Symbol, historyYears)
	if err != nil {
		return nil, fmt.Errorf("income statements: %w", err)
	}
	metrics, err := p.client.KeyMetrics(ctx, stock.Symbol, historyYears)
	if err != nil {
		return nil, fmt.Errorf("key metrics: %w", err)
	}

	f = &fundamentals{stock: stock, profile: profile, income: income, metrics: metrics}
	if f.empty() {
		// Listed but no financials to screen on; not an error.
		return nil, nil
	}
	return f, nil
}
