package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStatus(t *testing.T) {
	// noon UTC = 20:00 in the ops calendar
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 7)

	t.Run("cancelled is terminal regardless of facts", func(t *testing.T) {
		got := ResolveStatus(StatusCancelled, FinanceFacts{
			HasItems:     true,
			AllItemsPaid: true,
			Validated:    true,
		}, true, now.AddDate(0, 0, -1), now)
		assert.Equal(t, StatusCancelled, got)
	})

	t.Run("no-show is terminal regardless of facts", func(t *testing.T) {
		got := ResolveStatus(StatusNoShow, FinanceFacts{
			HasItems:     true,
			AllItemsPaid: true,
		}, true, now, now)
		assert.Equal(t, StatusNoShow, got)
	})

	t.Run("fully paid ledger wins over validated", func(t *testing.T) {
		got := ResolveStatus(StatusCompleted, FinanceFacts{
			HasItems:     true,
			AllItemsPaid: true,
			Validated:    true,
		}, true, now.AddDate(0, 0, -3), now)
		assert.Equal(t, StatusDone, got)
	})

	t.Run("empty ledger never counts as fully paid", func(t *testing.T) {
		got := ResolveStatus(StatusNew, FinanceFacts{
			HasItems:     false,
			AllItemsPaid: true,
		}, false, future, now)
		assert.Equal(t, StatusNew, got)
	})

	t.Run("validated wins over attention", func(t *testing.T) {
		got := ResolveStatus(StatusAttention, FinanceFacts{
			HasItems:  true,
			Validated: true,
		}, true, now.AddDate(0, 0, -2), now)
		assert.Equal(t, StatusCompleted, got)
	})

	t.Run("tour date reached without completion is attention", func(t *testing.T) {
		got := ResolveStatus(StatusReady, FinanceFacts{
			HasItems:        true,
			PatternAssigned: true,
		}, true, now, now)
		assert.Equal(t, StatusAttention, got)
	})

	t.Run("attention wins over updated on the tour day", func(t *testing.T) {
		got := ResolveStatus(StatusUpdated, FinanceFacts{}, false, now, now)
		assert.Equal(t, StatusAttention, got)
	})

	t.Run("updated sticks until re-review for future tours", func(t *testing.T) {
		got := ResolveStatus(StatusUpdated, FinanceFacts{
			PatternAssigned: true,
		}, true, future, now)
		assert.Equal(t, StatusUpdated, got)
	})

	t.Run("driver and pattern together make ready", func(t *testing.T) {
		got := ResolveStatus(StatusNew, FinanceFacts{
			HasItems:        true,
			PatternAssigned: true,
		}, true, future, now)
		assert.Equal(t, StatusReady, got)
	})

	t.Run("driver without pattern stays new", func(t *testing.T) {
		got := ResolveStatus(StatusNew, FinanceFacts{}, true, future, now)
		assert.Equal(t, StatusNew, got)
	})

	t.Run("pattern without driver stays new", func(t *testing.T) {
		got := ResolveStatus(StatusNew, FinanceFacts{
			HasItems:        true,
			PatternAssigned: true,
		}, false, future, now)
		assert.Equal(t, StatusNew, got)
	})

	t.Run("resolution is a fixed point", func(t *testing.T) {
		facts := FinanceFacts{HasItems: true, PatternAssigned: true}
		first := ResolveStatus(StatusNew, facts, true, future, now)
		second := ResolveStatus(first, facts, true, future, now)
		assert.Equal(t, first, second)
	})
}

func TestBooking_Resolve(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 7)

	newBooking := func(t *testing.T) *Booking {
		b, err := NewBooking("BK-1001", ChannelOTA, future, 2, 1)
		require.NoError(t, err)
		return b
	}

	t.Run("reports change when status moves", func(t *testing.T) {
		b := newBooking(t)
		driverID := uuid.New()
		require.NoError(t, b.AssignDriver(driverID))

		changed := b.Resolve(FinanceFacts{HasItems: true, PatternAssigned: true}, now)
		assert.True(t, changed)
		assert.Equal(t, StatusReady, b.Status)
	})

	t.Run("reports no change on redundant resolve", func(t *testing.T) {
		b := newBooking(t)

		changed := b.Resolve(FinanceFacts{}, now)
		assert.False(t, changed)
		assert.Equal(t, StatusNew, b.Status)
	})

	t.Run("terminal status survives resolve", func(t *testing.T) {
		b := newBooking(t)
		b.Cancel()

		changed := b.Resolve(FinanceFacts{HasItems: true, AllItemsPaid: true}, now)
		assert.False(t, changed)
		assert.Equal(t, StatusCancelled, b.Status)
	})
}
