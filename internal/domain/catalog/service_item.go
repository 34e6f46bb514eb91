package catalog

import (
	"github.com/google/uuid"
	"github.com/tourops/backend/internal/domain/shared"
)

// ServiceItem is a sellable/billable service referencing a TourItemCategory.
// It carries the default partner and the eligibility sets used for payee
// display and validation.
type ServiceItem struct {
	shared.BaseEntity
	Name               string            `json:"name"`
	CategoryID         uuid.UUID         `json:"category_id"`
	DefaultPartnerID   *uuid.UUID        `json:"default_partner_id"`
	EligiblePartnerIDs []uuid.UUID       `json:"eligible_partner_ids"`
	EligibleDriverIDs  []uuid.UUID       `json:"eligible_driver_ids"`
	IsActive           bool              `json:"is_active"`
	Category           *TourItemCategory `json:"category,omitempty"` // loaded on demand
}

// NewServiceItem creates a new service item
func NewServiceItem(name string, categoryID uuid.UUID) (*ServiceItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service item name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Service item category is required")
	}
	return &ServiceItem{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
		IsActive:   true,
	}, nil
}

// IsPartnerEligible reports whether the partner may be attached to this item.
// An empty eligibility set means any partner is allowed.
func (s *ServiceItem) IsPartnerEligible(partnerID uuid.UUID) bool {
	if len(s.EligiblePartnerIDs) == 0 {
		return true
	}
	for _, id := range s.EligiblePartnerIDs {
		if id == partnerID {
			return true
		}
	}
	return false
}

// IsDriverEligible reports whether the driver may be attached to this item.
// An empty eligibility set means any driver is allowed.
func (s *ServiceItem) IsDriverEligible(driverID uuid.UUID) bool {
	if len(s.EligibleDriverIDs) == 0 {
		return true
	}
	for _, id := range s.EligibleDriverIDs {
		if id == driverID {
			return true
		}
	}
	return false
}
