package models

import "time"

// Phase identifies where an ingestion run currently is in its lifecycle.
//
// Phases advance monotonically within one run:
//
//	Idle → FetchingList → FetchingFundamentals → ComputingDerived → Publishing → Complete
//
// Failed is terminal and reachable from any phase on an unrecoverable error
// (e.g., the ticker-list fetch itself failing). A new accepted run resets the
// cycle.
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseFetchingList         Phase = "fetching_list"
	PhaseFetchingFundamentals Phase = "fetching_fundamentals"
	PhaseComputingDerived     Phase = "computing_derived"
	PhasePublishing           Phase = "publishing"
	PhaseComplete             Phase = "complete"
	PhaseFailed               Phase = "failed"
)

// Progress describes the currently running (or last finished) ingestion job.
// It is mutated only by the active pipeline and read by polling clients.
type Progress struct {
	Running       bool      `json:"running"`
	Phase         Phase     `json:"phase"`
	Current       int       `json:"current"`
	Total         int       `json:"total"`
	CurrentTicker string    `json:"current_ticker"`
	Errors        int       `json:"errors"`
	StartedAt     time.Time `json:"started_at"`
	LastError     string    `json:"last_error"`
}
