package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/shared"
)

// UnitType determines how a pattern item's base quantity scales with a
// booking's pax counts
type UnitType string

const (
	UnitPerAdult   UnitType = "PER_ADULT"
	UnitPerChild   UnitType = "PER_CHILD"
	UnitPerPax     UnitType = "PER_PAX"
	UnitPerBooking UnitType = "PER_BOOKING"
)

// IsValid checks if the unit type is a valid UnitType
func (u UnitType) IsValid() bool {
	switch u {
	case UnitPerAdult, UnitPerChild, UnitPerPax, UnitPerBooking:
		return true
	}
	return false
}

// String returns the string representation of UnitType
func (u UnitType) String() string {
	return string(u)
}

// BaseQty returns the booking-derived base quantity for this unit type
func (u UnitType) BaseQty(adults, children int) int64 {
	switch u {
	case UnitPerAdult:
		return int64(adults)
	case UnitPerChild:
		return int64(children)
	case UnitPerPax:
		return int64(adults + children)
	default:
		return 1
	}
}

// CostPattern is a named, package-scoped template of default line items.
// Assigning a pattern to a booking instantiates its items into the booking's
// settlement ledger.
type CostPattern struct {
	shared.BaseEntity
	Name      string            `json:"name"`
	PackageID uuid.UUID         `json:"package_id"`
	IsActive  bool              `json:"is_active"`
	Items     []CostPatternItem `json:"items"`
}

// NewCostPattern creates a new cost pattern
func NewCostPattern(name string, packageID uuid.UUID) (*CostPattern, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Pattern name cannot be empty")
	}
	if packageID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PACKAGE", "Pattern package is required")
	}
	return &CostPattern{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		PackageID:  packageID,
		IsActive:   true,
	}, nil
}

// CostPatternItem is one templated line in a cost pattern. ServiceItem (with
// its category) must be loaded before the item can be instantiated.
type CostPatternItem struct {
	shared.BaseEntity
	PatternID        uuid.UUID       `json:"pattern_id"`
	ServiceItemID    uuid.UUID       `json:"service_item_id"`
	DefaultPartnerID *uuid.UUID      `json:"default_partner_id"`
	DefaultUnitType  UnitType        `json:"default_unit_type"`
	DefaultQty       decimal.Decimal `json:"default_qty"`
	DefaultPrice     decimal.Decimal `json:"default_price"`
	Position         int             `json:"position"`
	ServiceItem      *ServiceItem    `json:"service_item,omitempty"` // loaded on demand
}

// ResolvedPartnerID returns the partner to attach to instantiated items:
// the pattern item's default wins over the service item's default.
func (pi *CostPatternItem) ResolvedPartnerID() *uuid.UUID {
	if pi.DefaultPartnerID != nil {
		return pi.DefaultPartnerID
	}
	if pi.ServiceItem != nil {
		return pi.ServiceItem.DefaultPartnerID
	}
	return nil
}
