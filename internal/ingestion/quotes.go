package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/screenpulse/internal/domain/models"
	"github.com/guttosm/screenpulse/internal/logger"
)

// quoteBatchSize is how many tickers go into one upstream quote call.
const quoteBatchSize = 50

// StartQuotes accepts a quote-refresh trigger and runs it in the background.
// Quote updates share the full-refresh run lock: both publish snapshots, and
// concurrent publishes would race.
func (p *Pipeline) StartQuotes(ctx context.Context) error {
	if !p.tryAcquire() {
		return ErrAlreadyRunning
	}
	p.tracker.Begin()
	go func() {
		defer p.release()
		p.runQuotes(ctx)
	}()
	return nil
}

// RunQuotes executes one quote refresh synchronously (scheduler entry).
func (p *Pipeline) RunQuotes(ctx context.Context) error {
	if !p.tryAcquire() {
		return ErrAlreadyRunning
	}
	defer p.release()
	p.tracker.Begin()
	return p.runQuotes(ctx)
}

// runQuotes is the lighter pipeline variant: it refetches only price-derived
// fields for tickers already in the current snapshot and publishes the result
// as a new snapshot version, skipping the fundamentals and derived phases.
func (p *Pipeline) runQuotes(ctx context.Context) error {
	log := logger.L()
	start := time.Now()

	cur := p.store.Current()
	total := cur.Count()
	p.tracker.SetTotal(total)
	if total == 0 {
		p.tracker.Complete()
		log.Info().Msg("quote update skipped: empty snapshot")
		return nil
	}

	// Working copy; records in the published snapshot stay untouched.
	records := make([]models.Company, total)
	copy(records, cur.Records)
	byTicker := make(map[string]*models.Company, total)
	tickers := make([]string, total)
	for i := range records {
		byTicker[records[i].Ticker] = &records[i]
		tickers[i] = records[i].Ticker
	}

	p.tracker.SetPhase(models.PhaseFetchingFundamentals)
	for offset := 0; offset < total; offset += quoteBatchSize {
		if ctx.Err() != nil {
			p.tracker.Fail(ctx.Err())
			return ctx.Err()
		}
		end := offset + quoteBatchSize
		if end > total {
			end = total
		}
		batch := tickers[offset:end]

		quotes, err := p.client.BatchQuotes(ctx, batch)
		if err != nil {
			// One failed batch leaves its tickers stale; the run goes on.
			for _, tk := range batch {
				p.tracker.Advance(tk)
				p.tracker.RecordError(tk, err)
			}
			log.Warn().Err(err).Int("batch_size", len(batch)).Msg("quote batch failed")
			continue
		}

		updated := make(map[string]bool, len(quotes))
		for _, q := range quotes {
			rec, ok := byTicker[q.Symbol]
			if !ok {
				continue
			}
			if q.MarketCap != nil {
				rec.MarketCap = q.MarketCap
			}
			if q.Price != nil {
				rec.LastPrice = q.Price
			}
			if q.PE != nil {
				rec.PERatio = q.PE
			}
			updated[q.Symbol] = true
		}
		for _, tk := range batch {
			p.tracker.Advance(tk)
			if !updated[tk] {
				p.tracker.RecordError(tk, fmt.Errorf("no quote returned"))
			}
		}
	}

	p.tracker.SetPhase(models.PhasePublishing)
	snap := &models.Snapshot{
		Version:   p.store.NextVersion(),
		CreatedAt: time.Now().UTC(),
		Records:   records,
	}
	if err := p.repo.SaveSnapshot(snap); err != nil {
		log.Error().Err(err).Msg("quote update failed persisting snapshot")
		p.tracker.Fail(fmt.Errorf("persist snapshot: %w", err))
		return err
	}
	beforePublish()
	p.store.Publish(snap)

	p.tracker.Complete()
	prog := p.tracker.Read()
	log.Info().
		Int64("version", snap.Version).
		Int("errors", prog.Errors).
		Dur("elapsed", time.Since(start)).
		Msg("quote update complete")
	return nil
}
