package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpsDay(t *testing.T) {
	t.Run("truncates to the operations calendar date", func(t *testing.T) {
		ts := time.Date(2025, 9, 10, 10, 30, 45, 0, time.UTC)
		day := OpsDay(ts)

		assert.Equal(t, 2025, day.Year())
		assert.Equal(t, time.September, day.Month())
		assert.Equal(t, 10, day.Day())
		assert.Equal(t, 0, day.Hour())
	})

	t.Run("late UTC evening is already the next ops day", func(t *testing.T) {
		// 17:00 UTC is 01:00 the next day at UTC+8
		ts := time.Date(2025, 9, 10, 17, 0, 0, 0, time.UTC)
		assert.Equal(t, 11, OpsDay(ts).Day())
	})

	t.Run("early UTC afternoon is still the same ops day", func(t *testing.T) {
		ts := time.Date(2025, 9, 10, 15, 59, 0, 0, time.UTC)
		assert.Equal(t, 10, OpsDay(ts).Day())
	})
}

func TestOnOrBeforeOpsToday(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)

	t.Run("past date", func(t *testing.T) {
		assert.True(t, OnOrBeforeOpsToday(now.AddDate(0, 0, -1), now))
	})

	t.Run("same ops day", func(t *testing.T) {
		assert.True(t, OnOrBeforeOpsToday(now, now))
	})

	t.Run("future date", func(t *testing.T) {
		assert.False(t, OnOrBeforeOpsToday(now.AddDate(0, 0, 1), now))
	})

	t.Run("tour tomorrow UTC but today in the ops calendar", func(t *testing.T) {
		// At 17:00 UTC the ops calendar has rolled to the 11th, so a tour
		// dated the 11th is due.
		lateEvening := time.Date(2025, 9, 10, 17, 0, 0, 0, time.UTC)
		tour := time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC)
		assert.True(t, OnOrBeforeOpsToday(tour, lateEvening))
	})
}
