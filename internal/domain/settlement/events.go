package settlement

import (
	"github.com/google/uuid"
	"github.com/tourops/backend/internal/domain/shared"
)

// Event types for the BookingFinance aggregate
const (
	EventPatternAssigned = "finance.pattern_assigned"
	EventItemsSettled    = "finance.items_settled"
	EventLockToggled     = "finance.lock_toggled"
	EventValidated       = "finance.validated"
)

const aggregateTypeFinance = "BookingFinance"

// PatternAssignedEvent is raised when a ledger's item set is replaced from a pattern
type PatternAssignedEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID `json:"booking_id"`
	PatternID uuid.UUID `json:"pattern_id"`
	ItemCount int       `json:"item_count"`
}

// NewPatternAssignedEvent creates a new PatternAssignedEvent
func NewPatternAssignedEvent(f *BookingFinance, patternID uuid.UUID, itemCount int) *PatternAssignedEvent {
	return &PatternAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPatternAssigned, aggregateTypeFinance, f.ID),
		BookingID:       f.BookingID,
		PatternID:       patternID,
		ItemCount:       itemCount,
	}
}

// ItemsSettledEvent is raised when ledger items are marked paid
type ItemsSettledEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID   `json:"booking_id"`
	ItemIDs   []uuid.UUID `json:"item_ids"`
	PaidBy    string      `json:"paid_by"`
}

// NewItemsSettledEvent creates a new ItemsSettledEvent
func NewItemsSettledEvent(f *BookingFinance, itemIDs []uuid.UUID, paidBy string) *ItemsSettledEvent {
	return &ItemsSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventItemsSettled, aggregateTypeFinance, f.ID),
		BookingID:       f.BookingID,
		ItemIDs:         itemIDs,
		PaidBy:          paidBy,
	}
}

// LockToggledEvent is raised when the ledger lock flips
type LockToggledEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID `json:"booking_id"`
	IsLocked  bool      `json:"is_locked"`
}

// NewLockToggledEvent creates a new LockToggledEvent
func NewLockToggledEvent(f *BookingFinance, locked bool) *LockToggledEvent {
	return &LockToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventLockToggled, aggregateTypeFinance, f.ID),
		BookingID:       f.BookingID,
		IsLocked:        locked,
	}
}

// ValidatedEvent is raised when a ledger passes staff review
type ValidatedEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID `json:"booking_id"`
}

// NewValidatedEvent creates a new ValidatedEvent
func NewValidatedEvent(f *BookingFinance) *ValidatedEvent {
	return &ValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventValidated, aggregateTypeFinance, f.ID),
		BookingID:       f.BookingID,
	}
}
