package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/eren/shelfmate/internal/app/services"
	"github.com/eren/shelfmate/internal/pkg/helpers"
)

// ReminderScheduler runs the due-date reminder scan once a day at a fixed
// local hour.
type ReminderScheduler struct {
	reminders   *services.ReminderService
	horizonDays int
	hour        int
	logger      zerolog.Logger

	// now is swappable in tests
	now func() time.Time
}

// NewReminderScheduler creates a new ReminderScheduler
func NewReminderScheduler(reminders *services.ReminderService, horizonDays, hour int, logger zerolog.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		reminders:   reminders,
		horizonDays: horizonDays,
		hour:        hour,
		logger:      logger,
		now:         time.Now,
	}
}

// nextRun returns the next occurrence of the configured hour after now
func (s *ReminderScheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until the context is cancelled, firing one reminder scan per
// day. Scan failures are logged and the loop keeps going.
func (s *ReminderScheduler) Run(ctx context.Context) {
	s.logger.Info().
		Int("hour", s.hour).
		Int("horizonDays", s.horizonDays).
		Msg("Reminder scheduler started")

	for {
		wait := time.Until(s.nextRun(s.now()))
		s.logger.Debug().Dur("wait", wait).Msg("Next reminder scan scheduled")

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Reminder scheduler stopped")
			return
		case <-time.After(wait):
		}

		notified, failed, err := s.reminders.Scan(ctx, helpers.Today(), s.horizonDays)
		if err != nil {
			s.logger.Error().Err(err).Msg("Reminder scan failed")
			continue
		}
		s.logger.Info().
			Int("notified", notified).
			Int("failed", failed).
			Msg("Reminder scan completed")
	}
}
