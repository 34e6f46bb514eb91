package catalog

import (
	"github.com/tourops/backend/internal/domain/shared"
)

// Direction represents the money flow direction of a ledger item
type Direction string

const (
	DirectionExpense Direction = "EXPENSE" // company pays out
	DirectionIncome  Direction = "INCOME"  // company collects
)

// IsValid checks if the direction is a valid Direction
func (d Direction) IsValid() bool {
	return d == DirectionExpense || d == DirectionIncome
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// PayeeMode constrains which payee types are valid for items in a category.
// Behavior downstream is parameterized by this value, never by category code.
type PayeeMode string

const (
	PayeeModeDriverOnly  PayeeMode = "DRIVER_ONLY"
	PayeeModePartnerOnly PayeeMode = "PARTNER_ONLY"
	PayeeModeEither      PayeeMode = "EITHER"
	PayeeModeNone        PayeeMode = "NONE"
)

// IsValid checks if the mode is a valid PayeeMode
func (m PayeeMode) IsValid() bool {
	switch m {
	case PayeeModeDriverOnly, PayeeModePartnerOnly, PayeeModeEither, PayeeModeNone:
		return true
	}
	return false
}

// String returns the string representation of PayeeMode
func (m PayeeMode) String() string {
	return string(m)
}

// AllowsDriver returns true if items in this mode may be owed to a driver
func (m PayeeMode) AllowsDriver() bool {
	return m == PayeeModeDriverOnly || m == PayeeModeEither
}

// AllowsPartner returns true if items in this mode may be owed to a partner
func (m PayeeMode) AllowsPartner() bool {
	return m == PayeeModePartnerOnly || m == PayeeModeEither
}

// TourItemCategory is master data encoding the payment policy of a class of
// cost items: direction, payee mode, commission flag. Ledger items copy these
// fields as snapshots at assignment time; editing a category never changes
// historical items.
type TourItemCategory struct {
	shared.BaseEntity
	Code                  string    `json:"code"`
	Name                  string    `json:"name"`
	DefaultDirection      Direction `json:"default_direction"`
	PayeeMode             PayeeMode `json:"payee_mode"`
	AutoDriverFromBooking bool      `json:"auto_driver_from_booking"`
	IsCommission          bool      `json:"is_commission"`
	AllowRelatedItem      bool      `json:"allow_related_item"`
	RequirePartner        bool      `json:"require_partner"`
	SortOrder             int       `json:"sort_order"`
	IsActive              bool      `json:"is_active"`
}

// NewTourItemCategory creates a new category with validated policy fields
func NewTourItemCategory(code, name string, direction Direction, payeeMode PayeeMode) (*TourItemCategory, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Category code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Category direction is not valid")
	}
	if !payeeMode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYEE_MODE", "Category payee mode is not valid")
	}

	return &TourItemCategory{
		BaseEntity:       shared.NewBaseEntity(),
		Code:             code,
		Name:             name,
		DefaultDirection: direction,
		PayeeMode:        payeeMode,
		IsActive:         true,
	}, nil
}
