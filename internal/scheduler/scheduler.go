// Package scheduler wraps robfig/cron for the background refresh jobs.
package scheduler

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/guttosm/screenpulse/internal/ingestion"
)

// Job represents a scheduled job.
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a new scheduler using standard 5-field cron expressions.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// AddJob registers a job with a cron schedule (e.g. "0 6 * * 6").
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Info().Str("job", job.Name()).Msg("running job")
		if err := job.Run(); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Msg("job failed")
			return
		}
		s.log.Info().Str("job", job.Name()).Msg("job completed")
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("job registered")
	return nil
}

// IngestJob runs a full snapshot refresh on schedule.
type IngestJob struct {
	Pipeline *ingestion.Pipeline
}

func (j IngestJob) Name() string { return "full_ingest" }

// Run skips the cycle instead of failing when a run is already active.
func (j IngestJob) Run() error {
	err := j.Pipeline.RunFull(context.Background())
	if errors.Is(err, ingestion.ErrAlreadyRunning) {
		return nil
	}
	return err
}

// QuotesJob refreshes price-derived fields on schedule.
type QuotesJob struct {
	Pipeline *ingestion.Pipeline
}

func (j QuotesJob) Name() string { return "quote_update" }

func (j QuotesJob) Run() error {
	err := j.Pipeline.RunQuotes(context.Background())
	if errors.Is(err, ingestion.ErrAlreadyRunning) {
		return nil
	}
	return err
}
