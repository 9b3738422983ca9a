package scheduler

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNextRun(t *testing.T) {
	s := NewReminderScheduler(nil, 5, 8, zerolog.Nop())

	// Before the configured hour: the scan runs later today
	now := time.Date(2025, time.June, 10, 6, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC), s.nextRun(now))

	// At or after the configured hour: the scan runs tomorrow
	now = time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.June, 11, 8, 0, 0, 0, time.UTC), s.nextRun(now))

	now = time.Date(2025, time.June, 10, 22, 15, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.June, 11, 8, 0, 0, 0, time.UTC), s.nextRun(now))
}
