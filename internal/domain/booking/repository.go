package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides access to bookings
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	FindByExternalRef(ctx context.Context, externalRef string) (*Booking, error)
	// FindActiveIDs returns the IDs of all bookings in a non-terminal status,
	// used by the periodic full status resync sweep.
	FindActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	Save(ctx context.Context, b *Booking) error
}
