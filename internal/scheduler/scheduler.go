package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// New creates a scheduler whose specs are evaluated in loc, with seconds precision
func New(loc *time.Location, logger zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
		),
		logger: logger.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds a job under a six-field cron spec
func (s *Scheduler) Register(name, spec string, job func()) error {
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		s.logger.Error().Err(err).Str("job", name).Str("spec", spec).Msg("Failed to register job")
		return err
	}
	s.logger.Info().Str("job", name).Str("spec", spec).Msg("Job registered")
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Starting cron scheduler")
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping cron scheduler...")
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info().Msg("Cron scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
