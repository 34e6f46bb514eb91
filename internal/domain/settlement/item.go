package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/catalog"
	"github.com/tourops/backend/internal/domain/shared"
)

// PayeeType identifies who a ledger item is owed to/owing from. It is always
// derived from the attached payee IDs, never set independently.
type PayeeType string

const (
	PayeeDriver  PayeeType = "DRIVER"
	PayeePartner PayeeType = "PARTNER"
	PayeeNone    PayeeType = "NONE"
)

// IsValid checks if the payee type is a valid PayeeType
func (p PayeeType) IsValid() bool {
	return p == PayeeDriver || p == PayeePartner || p == PayeeNone
}

// String returns the string representation of PayeeType
func (p PayeeType) String() string {
	return string(p)
}

// DerivePayeeType derives the payee type from the attached payee IDs.
// Driver wins when both are set.
func DerivePayeeType(driverID, partnerID *uuid.UUID) PayeeType {
	switch {
	case driverID != nil && *driverID != uuid.Nil:
		return PayeeDriver
	case partnerID != nil && *partnerID != uuid.Nil:
		return PayeePartner
	default:
		return PayeeNone
	}
}

// RelationType qualifies a link between two ledger items
type RelationType string

// RelationCommissionFor links a split commission entry to its source item
const RelationCommissionFor RelationType = "COMMISSION_FOR"

// CategorySnapshot is the immutable copy of category policy taken when an
// item is created. Later edits to TourItemCategory master data never change
// historical items; the snapshot is the only permitted freeze of shared state.
type CategorySnapshot struct {
	CategoryID       uuid.UUID `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	IsCommission     bool      `json:"is_commission"`
	AllowRelatedItem bool      `json:"allow_related_item"`
}

// SnapshotOf captures the snapshot fields from a category
func SnapshotOf(c *catalog.TourItemCategory) CategorySnapshot {
	return CategorySnapshot{
		CategoryID:       c.ID,
		CategoryName:     c.Name,
		IsCommission:     c.IsCommission,
		AllowRelatedItem: c.AllowRelatedItem,
	}
}

// FinanceItem is one line of a booking's settlement ledger. Amount is always
// server-derived as UnitQty * UnitPrice.
type FinanceItem struct {
	shared.BaseEntity
	FinanceID     uuid.UUID         `json:"finance_id"`
	ServiceItemID *uuid.UUID        `json:"service_item_id"` // nil for manual items
	NameSnapshot  string            `json:"name_snapshot"`
	Snapshot      CategorySnapshot  `json:"snapshot"`
	Direction     catalog.Direction `json:"direction"`
	IsManual      bool              `json:"is_manual"`
	UnitType      catalog.UnitType  `json:"unit_type"`
	UnitQty       decimal.Decimal   `json:"unit_qty"`
	UnitPrice     decimal.Decimal   `json:"unit_price"`
	Amount        decimal.Decimal   `json:"amount"`
	DriverID      *uuid.UUID        `json:"driver_id"`
	PartnerID     *uuid.UUID        `json:"partner_id"`
	PayeeType     PayeeType         `json:"payee_type"`
	RelatedItemID *uuid.UUID        `json:"related_item_id"`
	RelationType  *RelationType     `json:"relation_type"`
	Paid          bool              `json:"paid"`
	PaidAt        *time.Time        `json:"paid_at"`
	PaidBy        string            `json:"paid_by"`
	PaidNote      string            `json:"paid_note"`
	Notes         string            `json:"notes"`
}

// recompute re-derives amount and payee type from their source fields
func (i *FinanceItem) recompute() {
	i.Amount = i.UnitQty.Mul(i.UnitPrice)
	i.PayeeType = DerivePayeeType(i.DriverID, i.PartnerID)
}

// setQuantityPrice replaces qty/price and re-derives the amount
func (i *FinanceItem) setQuantityPrice(qty, price decimal.Decimal) {
	i.UnitQty = qty
	i.UnitPrice = price
	i.recompute()
	i.Touch()
}

// markPaid settles the item with attribution. No-op on an already paid item.
func (i *FinanceItem) markPaid(paidBy, paidNote string, paidAt time.Time) bool {
	if i.Paid {
		return false
	}
	i.Paid = true
	i.PaidAt = &paidAt
	i.PaidBy = paidBy
	i.PaidNote = paidNote
	i.Touch()
	return true
}

// ItemPatch carries the patchable fields of a ledger item. Nil pointers mean
// "leave unchanged"; Clear flags detach a payee explicitly.
type ItemPatch struct {
	UnitQty      *decimal.Decimal
	UnitPrice    *decimal.Decimal
	Direction    *catalog.Direction
	UnitType     *catalog.UnitType
	Snapshot     *CategorySnapshot // category override, already snapshotted
	DriverID     *uuid.UUID
	ClearDriver  bool
	PartnerID    *uuid.UUID
	ClearPartner bool
	Paid         *bool
	PaidAt       *time.Time
	PaidBy       *string
	PaidNote     *string
	Notes        *string
}

// apply mutates the item per the patch, re-deriving amount and payee type
func (i *FinanceItem) apply(p ItemPatch, now time.Time) error {
	if p.Direction != nil {
		if !p.Direction.IsValid() {
			return shared.NewDomainError("INVALID_DIRECTION", "Item direction is not valid")
		}
		i.Direction = *p.Direction
	}
	if p.UnitType != nil {
		if !p.UnitType.IsValid() {
			return shared.NewDomainError("INVALID_UNIT_TYPE", "Item unit type is not valid")
		}
		i.UnitType = *p.UnitType
	}
	if p.Snapshot != nil {
		i.Snapshot = *p.Snapshot
	}
	if p.UnitQty != nil {
		i.UnitQty = *p.UnitQty
	}
	if p.UnitPrice != nil {
		i.UnitPrice = *p.UnitPrice
	}
	if p.ClearDriver {
		i.DriverID = nil
	} else if p.DriverID != nil {
		i.DriverID = p.DriverID
	}
	if p.ClearPartner {
		i.PartnerID = nil
	} else if p.PartnerID != nil {
		i.PartnerID = p.PartnerID
	}
	if p.Paid != nil {
		i.Paid = *p.Paid
		if *p.Paid {
			at := now
			if p.PaidAt != nil {
				at = *p.PaidAt
			}
			i.PaidAt = &at
		} else {
			i.PaidAt = nil
			i.PaidBy = ""
			i.PaidNote = ""
		}
	} else if p.PaidAt != nil {
		i.PaidAt = p.PaidAt
	}
	if p.PaidBy != nil {
		i.PaidBy = *p.PaidBy
	}
	if p.PaidNote != nil {
		i.PaidNote = *p.PaidNote
	}
	if p.Notes != nil {
		i.Notes = *p.Notes
	}

	i.recompute()
	i.UpdatedAt = now
	return nil
}
