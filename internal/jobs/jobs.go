// Package jobs holds the bodies of background work run by the scheduler
package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultJobTimeout = 5 * time.Minute

// ReminderSender sends the day-before interview reminders
type ReminderSender interface {
	SendInterviewReminders(ctx context.Context) (int, error)
}

// Runner coordinates scheduled jobs
type Runner struct {
	reminders ReminderSender
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewRunner creates a job runner
func NewRunner(reminders ReminderSender, logger zerolog.Logger) *Runner {
	return &Runner{
		reminders: reminders,
		timeout:   defaultJobTimeout,
		logger:    logger.With().Str("component", "jobs").Logger(),
	}
}

// runWithRecovery wraps job execution with panic recovery and a deadline
func (r *Runner) runWithRecovery(name string, fn func(ctx context.Context) error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("job", name).Interface("panic", rec).Msg("Job panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	started := time.Now()
	r.logger.Info().Str("job", name).Msg("Starting job")
	if err := fn(ctx); err != nil {
		r.logger.Error().Err(err).Str("job", name).Dur("took", time.Since(started)).Msg("Job failed")
		return
	}
	r.logger.Info().Str("job", name).Dur("took", time.Since(started)).Msg("Job completed")
}

// SendInterviewReminders notifies conductors of tomorrow's interviews
func (r *Runner) SendInterviewReminders() {
	r.runWithRecovery("SendInterviewReminders", func(ctx context.Context) error {
		sent, err := r.reminders.SendInterviewReminders(ctx)
		if err != nil {
			return err
		}
		r.logger.Info().Int("sent", sent).Msg("Interview reminders sent")
		return nil
	})
}
