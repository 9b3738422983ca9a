package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnly(t *testing.T) {
	stamp := time.Date(2025, time.June, 10, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), DateOnly(stamp))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.June, 15, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysBetween(a, b))
	assert.Equal(t, -5, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("garbage", time.Minute))
}
