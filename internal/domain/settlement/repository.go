package settlement

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides access to booking settlement ledgers. Implementations
// must load and persist the aggregate with its full owned item collection.
type Repository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*BookingFinance, error)
	// FindByItemID resolves the ledger owning the given item
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*BookingFinance, error)
	// FindOwners returns the distinct ledgers owning any of the given items
	FindOwners(ctx context.Context, itemIDs []uuid.UUID) ([]BookingFinance, error)
	// Replace persists the aggregate as an atomic replace-set: within one
	// transaction, holding a row lock on the finance row, all prior items are
	// deleted and the current item set is inserted.
	Replace(ctx context.Context, finance *BookingFinance) error
	// Save persists the finance row and upserts its current items without
	// deleting absent ones. Used for single-item edits and flag toggles.
	Save(ctx context.Context, finance *BookingFinance) error
	// ListByValidation lists ledgers with (validated=true) or without
	// (validated=false) a validation mark, items included.
	ListByValidation(ctx context.Context, validated bool) ([]BookingFinance, error)
}
