// Package progress tracks the state of the currently running ingestion job
// for polling clients.
package progress

import (
	"sync"
	"time"

	"github.com/guttosm/screenpulse/internal/domain/models"
)

// Tracker is a concurrency-safe holder for ingestion progress. The active
// pipeline is the only writer; any number of pollers may read concurrently and
// always get a complete, non-torn value.
type Tracker struct {
	mu    sync.Mutex
	state models.Progress
}

// NewTracker starts in the Idle phase with zeroed counters.
func NewTracker() *Tracker {
	return &Tracker{state: models.Progress{Phase: models.PhaseIdle}}
}

// Begin resets the tracker for a freshly accepted run.
func (t *Tracker) Begin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = models.Progress{
		Running:   true,
		Phase:     models.PhaseFetchingList,
		StartedAt: time.Now().UTC(),
	}
}

// SetPhase advances the run to the given phase.
func (t *Tracker) SetPhase(phase models.Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Phase = phase
}

// SetTotal records the size of the ticker universe once known.
func (t *Tracker) SetTotal(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Total = total
}

// Advance bumps the processed count and records the most recently attempted
// ticker for observability.
func (t *Tracker) Advance(ticker string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Current++
	t.state.CurrentTicker = ticker
}

// RecordError counts one isolated per-ticker failure without stopping the run.
func (t *Tracker) RecordError(ticker string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Errors++
	if err != nil {
		t.state.LastError = ticker + ": " + err.Error()
	}
}

// Complete freezes the run in its terminal successful state.
func (t *Tracker) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Running = false
	t.state.Phase = models.PhaseComplete
}

// Fail marks the run as aborted by an unrecoverable error.
func (t *Tracker) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Running = false
	t.state.Phase = models.PhaseFailed
	if err != nil {
		t.state.LastError = err.Error()
	}
}

// Read returns a copy of the latest fully-written progress value.
func (t *Tracker) Read() models.Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
