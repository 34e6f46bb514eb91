package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark wins, second is a duplicate", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		marked, err := store.MarkProcessed(ctx, "evt-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, marked)

		marked, err = store.MarkProcessed(ctx, "evt-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, marked)
	})

	t.Run("is-processed reflects marking", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		processed, err := store.IsProcessed(ctx, "evt-2")
		require.NoError(t, err)
		assert.False(t, processed)

		_, err = store.MarkProcessed(ctx, "evt-2", time.Hour)
		require.NoError(t, err)

		processed, err = store.IsProcessed(ctx, "evt-2")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("expired keys can be re-marked", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(ctx, "evt-3", time.Nanosecond)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "evt-3")
		require.NoError(t, err)
		assert.False(t, processed)

		marked, err := store.MarkProcessed(ctx, "evt-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, marked)
	})

	t.Run("cleanup evicts expired keys", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(ctx, "evt-4", time.Nanosecond)
		require.NoError(t, err)
		_, err = store.MarkProcessed(ctx, "evt-5", time.Hour)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		store.cleanup()

		assert.Equal(t, 1, store.Size())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}
