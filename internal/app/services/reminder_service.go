package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/email"
	"github.com/eren/shelfmate/internal/pkg/helpers"
)

// DefaultReminderHorizonDays is how far ahead of the due date reminders start
const DefaultReminderHorizonDays = 5

// ReminderService scans the ledger for loans nearing or past their due date
// and hands each to the Notifier. The scan is read-only; it never mutates
// ledger state.
type ReminderService struct {
	issues   repositories.IssueStore
	notifier email.Notifier
	logger   zerolog.Logger
}

// NewReminderService creates a new reminder service instance
func NewReminderService(issues repositories.IssueStore, notifier email.Notifier, logger zerolog.Logger) *ReminderService {
	return &ReminderService{
		issues:   issues,
		notifier: notifier,
		logger:   logger,
	}
}

// Scan notifies every student whose loan is due within horizonDays of asOf,
// overdue loans included (days remaining goes negative). One student's
// delivery failure never aborts the rest of the scan.
func (s *ReminderService) Scan(ctx context.Context, asOf time.Time, horizonDays int) (notified, failed int, err error) {
	if horizonDays < 0 {
		horizonDays = DefaultReminderHorizonDays
	}
	asOf = helpers.DateOnly(asOf)

	records, err := s.issues.DueWithin(ctx, asOf, horizonDays)
	if err != nil {
		return 0, 0, fmt.Errorf("error retrieving due loans: %w", err)
	}

	for _, record := range records {
		if record.Book == nil || record.Student == nil {
			s.logger.Warn().Int64("recordId", record.ID).Msg("Skipping reminder for loan with missing relations")
			failed++
			continue
		}

		daysRemaining := helpers.DaysBetween(asOf, record.DueDate)
		subject, body := email.ReminderEmail(
			record.Student.Name,
			record.Book.Title,
			record.DueDate.Format("2006-01-02"),
			daysRemaining,
		)

		if sendErr := s.notifier.Send(record.Student.Email, subject, body); sendErr != nil {
			s.logger.Error().Err(sendErr).
				Int64("recordId", record.ID).
				Str("email", record.Student.Email).
				Msg("Failed to send due-date reminder")
			failed++
			continue
		}

		s.logger.Debug().
			Int64("recordId", record.ID).
			Int("daysRemaining", daysRemaining).
			Msg("Due-date reminder sent")
		notified++
	}

	return notified, failed, nil
}
