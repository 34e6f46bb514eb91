package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores processed event keys to prevent duplicate processing
type IdempotencyStore interface {
	// MarkProcessed marks an event key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if an event key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the retention window for processed event keys. Booking ingestion
	// events are deduplicated for 35 days to cover delayed OTA redeliveries.
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     35 * 24 * time.Hour,
		Enabled: true,
	}
}
