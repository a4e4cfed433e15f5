// Package snapshot holds the process-wide current-snapshot reference.
//
// Writers build an entire new snapshot off to the side and publish it with one
// atomic pointer swap; readers take one atomic load at the start of a query
// and work on that immutable value for the whole request. No reader ever
// blocks on a writer.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/guttosm/screenpulse/internal/domain/models"
)

// Store owns the shared current-snapshot pointer.
type Store struct {
	current atomic.Pointer[models.Snapshot]
}

// NewStore returns a store seeded with an empty version-0 snapshot so queries
// work before any ingestion has run.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&models.Snapshot{Version: 0, CreatedAt: time.Now().UTC(), Records: []models.Company{}})
	return s
}

// Current returns the latest published snapshot. The caller must treat it as
// read-only.
func (s *Store) Current() *models.Snapshot {
	return s.current.Load()
}

// Publish atomically replaces the current snapshot. Only fully built
// snapshots may be published; a partially built snapshot must never reach
// this call.
func (s *Store) Publish(snap *models.Snapshot) {
	s.current.Store(snap)
}

// NextVersion returns the version number the next published snapshot should
// carry.
func (s *Store) NextVersion() int64 {
	return s.Current().Version + 1
}
