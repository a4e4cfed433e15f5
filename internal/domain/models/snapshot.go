package models

import "time"

// Snapshot is one complete, immutable, versioned copy of all company records.
//
// A snapshot is built entirely off to the side by the ingestion pipeline and
// published with a single atomic pointer swap; readers therefore observe either
// the whole snapshot or none of it, never a mix of versions. Records must not
// be mutated after the snapshot is published.
type Snapshot struct {
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Records   []Company `json:"records"`
}

// Count returns the number of records in the snapshot. Safe on a nil snapshot.
func (s *Snapshot) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
