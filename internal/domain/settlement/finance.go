package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/catalog"
	"github.com/tourops/backend/internal/domain/shared"
)

// BookingFinance is the per-booking settlement ledger aggregate root. It
// exclusively owns its FinanceItem collection; replacing the item set is a
// single atomic operation on the aggregate, never ad hoc deletes from outside.
//
// Exactly one BookingFinance exists per booking.
type BookingFinance struct {
	shared.BaseAggregateRoot
	BookingID   uuid.UUID     `json:"booking_id"`
	PatternID   *uuid.UUID    `json:"pattern_id"`
	AssignedAt  time.Time     `json:"assigned_at"`
	ValidatedAt *time.Time    `json:"validated_at"`
	IsLocked    bool          `json:"is_locked"`
	Items       []FinanceItem `json:"items"`
}

// NewBookingFinance creates an empty ledger for a booking
func NewBookingFinance(bookingID uuid.UUID) (*BookingFinance, error) {
	if bookingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOKING", "Booking ID cannot be empty")
	}
	return &BookingFinance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingID:         bookingID,
		AssignedAt:        time.Now(),
	}, nil
}

// ReplaceItems atomically supersedes the whole owned item set with a freshly
// instantiated one. A locked ledger rejects reassignment.
func (f *BookingFinance) ReplaceItems(patternID uuid.UUID, items []FinanceItem) error {
	if f.IsLocked {
		return shared.ErrFinanceLocked
	}
	now := time.Now()
	for idx := range items {
		items[idx].FinanceID = f.ID
	}
	f.PatternID = &patternID
	f.AssignedAt = now
	f.Items = items
	f.UpdatedAt = now
	f.AddDomainEvent(NewPatternAssignedEvent(f, patternID, len(items)))
	return nil
}

// Item returns the owned item with the given ID
func (f *BookingFinance) Item(itemID uuid.UUID) (*FinanceItem, error) {
	for idx := range f.Items {
		if f.Items[idx].ID == itemID {
			return &f.Items[idx], nil
		}
	}
	return nil, shared.ErrNotFound
}

// PatchItem applies a manual edit to one owned item. Locked ledgers are
// immutable; unlock first.
func (f *BookingFinance) PatchItem(itemID uuid.UUID, patch ItemPatch) (*FinanceItem, error) {
	if f.IsLocked {
		return nil, shared.ErrFinanceLocked
	}
	item, err := f.Item(itemID)
	if err != nil {
		return nil, err
	}
	if err := item.apply(patch, time.Now()); err != nil {
		return nil, err
	}
	f.UpdatedAt = item.UpdatedAt
	return item, nil
}

// AddManualItem appends a staff-entered line that did not come from a pattern
func (f *BookingFinance) AddManualItem(name string, snapshot CategorySnapshot, direction catalog.Direction, qty, price decimal.Decimal) (*FinanceItem, error) {
	if f.IsLocked {
		return nil, shared.ErrFinanceLocked
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Item direction is not valid")
	}
	item := FinanceItem{
		BaseEntity:   shared.NewBaseEntity(),
		FinanceID:    f.ID,
		NameSnapshot: name,
		Snapshot:     snapshot,
		Direction:    direction,
		IsManual:     true,
		UnitType:     catalog.UnitPerBooking,
		UnitQty:      qty,
		UnitPrice:    price,
	}
	item.recompute()
	f.Items = append(f.Items, item)
	f.Touch()
	return &f.Items[len(f.Items)-1], nil
}

// SettleEligible reports whether items of this ledger may enter the
// settlement queue. Items pending review must not be payable, so the ledger
// has to be both validated and locked.
func (f *BookingFinance) SettleEligible() bool {
	return f.ValidatedAt != nil && f.IsLocked
}

// SettleItems marks the given owned items paid with attribution, skipping
// items already paid. Returns the IDs actually settled.
func (f *BookingFinance) SettleItems(itemIDs []uuid.UUID, paidBy, paidNote string, paidAt time.Time) ([]uuid.UUID, error) {
	if !f.SettleEligible() {
		return nil, shared.NewDomainError("INVALID_STATE", "Ledger must be validated and locked before settlement")
	}
	if paidBy == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Settlement attribution (paid_by) is required")
	}

	want := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}

	var settled []uuid.UUID
	for idx := range f.Items {
		item := &f.Items[idx]
		if !want[item.ID] {
			continue
		}
		if item.markPaid(paidBy, paidNote, paidAt) {
			settled = append(settled, item.ID)
		}
	}
	if len(settled) > 0 {
		f.Touch()
		f.AddDomainEvent(NewItemsSettledEvent(f, settled, paidBy))
	}
	return settled, nil
}

// SetLocked toggles the ledger lock. Unlock is the only mutation permitted on
// a locked ledger.
func (f *BookingFinance) SetLocked(locked bool) {
	if f.IsLocked == locked {
		return
	}
	f.IsLocked = locked
	f.Touch()
	f.AddDomainEvent(NewLockToggledEvent(f, locked))
}

// Validate marks the ledger reviewed. Validation locks the ledger so the
// reviewed figures cannot drift before settlement.
func (f *BookingFinance) Validate(at time.Time) error {
	if f.ValidatedAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Ledger is already validated")
	}
	if len(f.Items) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot validate an empty ledger")
	}
	f.ValidatedAt = &at
	f.IsLocked = true
	f.Touch()
	f.AddDomainEvent(NewValidatedEvent(f))
	return nil
}

// Unvalidate clears the validation mark and releases the lock
func (f *BookingFinance) Unvalidate() error {
	if f.ValidatedAt == nil {
		return shared.NewDomainError("INVALID_STATE", "Ledger is not validated")
	}
	f.ValidatedAt = nil
	f.IsLocked = false
	f.Touch()
	return nil
}

// HasItems returns true if the ledger holds at least one item
func (f *BookingFinance) HasItems() bool {
	return len(f.Items) > 0
}

// AllItemsPaid returns true if the ledger is non-empty and every item is paid
func (f *BookingFinance) AllItemsPaid() bool {
	if len(f.Items) == 0 {
		return false
	}
	for idx := range f.Items {
		if !f.Items[idx].Paid {
			return false
		}
	}
	return true
}

// LatestPaidAt returns the most recent settlement timestamp across items
func (f *BookingFinance) LatestPaidAt() *time.Time {
	var latest *time.Time
	for idx := range f.Items {
		if at := f.Items[idx].PaidAt; at != nil {
			if latest == nil || at.After(*latest) {
				latest = at
			}
		}
	}
	return latest
}

// Summary holds the per-booking financial totals shown in the validation list
type Summary struct {
	Expense    decimal.Decimal `json:"expense"`
	Income     decimal.Decimal `json:"income"`
	Commission decimal.Decimal `json:"commission"`
	Net        decimal.Decimal `json:"net"`
}

// Summarize computes expense/income/commission/net totals over the items
func (f *BookingFinance) Summarize() Summary {
	s := Summary{
		Expense:    decimal.Zero,
		Income:     decimal.Zero,
		Commission: decimal.Zero,
		Net:        decimal.Zero,
	}
	for idx := range f.Items {
		item := &f.Items[idx]
		switch item.Direction {
		case catalog.DirectionExpense:
			s.Expense = s.Expense.Add(item.Amount)
		case catalog.DirectionIncome:
			s.Income = s.Income.Add(item.Amount)
		}
		if item.Snapshot.IsCommission {
			s.Commission = s.Commission.Add(item.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}
