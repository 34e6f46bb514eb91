package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/catalog"
)

// TourItemCategoryModel is the persistence model for category master data.
type TourItemCategoryModel struct {
	BaseModel
	Code                  string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name                  string            `gorm:"type:varchar(200);not null"`
	DefaultDirection      catalog.Direction `gorm:"type:varchar(10);not null"`
	PayeeMode             catalog.PayeeMode `gorm:"type:varchar(20);not null"`
	AutoDriverFromBooking bool              `gorm:"not null;default:false"`
	IsCommission          bool              `gorm:"not null;default:false"`
	AllowRelatedItem      bool              `gorm:"not null;default:false"`
	RequirePartner        bool              `gorm:"not null;default:false"`
	SortOrder             int               `gorm:"not null;default:0"`
	IsActive              bool              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (TourItemCategoryModel) TableName() string {
	return "tour_item_categories"
}

// ToDomain converts the persistence model to a domain TourItemCategory entity.
func (m *TourItemCategoryModel) ToDomain() *catalog.TourItemCategory {
	return &catalog.TourItemCategory{
		BaseEntity:            m.BaseModel.ToDomain(),
		Code:                  m.Code,
		Name:                  m.Name,
		DefaultDirection:      m.DefaultDirection,
		PayeeMode:             m.PayeeMode,
		AutoDriverFromBooking: m.AutoDriverFromBooking,
		IsCommission:          m.IsCommission,
		AllowRelatedItem:      m.AllowRelatedItem,
		RequirePartner:        m.RequirePartner,
		SortOrder:             m.SortOrder,
		IsActive:              m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain TourItemCategory entity.
func (m *TourItemCategoryModel) FromDomain(c *catalog.TourItemCategory) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Name = c.Name
	m.DefaultDirection = c.DefaultDirection
	m.PayeeMode = c.PayeeMode
	m.AutoDriverFromBooking = c.AutoDriverFromBooking
	m.IsCommission = c.IsCommission
	m.AllowRelatedItem = c.AllowRelatedItem
	m.RequirePartner = c.RequirePartner
	m.SortOrder = c.SortOrder
	m.IsActive = c.IsActive
}

// ServiceItemModel is the persistence model for service item master data.
// Eligibility sets are stored as jsonb arrays; empty means any.
type ServiceItemModel struct {
	BaseModel
	Name               string                 `gorm:"type:varchar(200);not null"`
	CategoryID         uuid.UUID              `gorm:"type:uuid;not null;index"`
	DefaultPartnerID   *uuid.UUID             `gorm:"type:uuid"`
	EligiblePartnerIDs []uuid.UUID            `gorm:"type:jsonb;serializer:json"`
	EligibleDriverIDs  []uuid.UUID            `gorm:"type:jsonb;serializer:json"`
	IsActive           bool                   `gorm:"not null;default:true;index"`
	Category           *TourItemCategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for GORM
func (ServiceItemModel) TableName() string {
	return "service_items"
}

// ToDomain converts the persistence model to a domain ServiceItem entity.
func (m *ServiceItemModel) ToDomain() *catalog.ServiceItem {
	item := &catalog.ServiceItem{
		BaseEntity:         m.BaseModel.ToDomain(),
		Name:               m.Name,
		CategoryID:         m.CategoryID,
		DefaultPartnerID:   m.DefaultPartnerID,
		EligiblePartnerIDs: m.EligiblePartnerIDs,
		EligibleDriverIDs:  m.EligibleDriverIDs,
		IsActive:           m.IsActive,
	}
	if m.Category != nil {
		item.Category = m.Category.ToDomain()
	}
	return item
}

// FromDomain populates the persistence model from a domain ServiceItem entity.
func (m *ServiceItemModel) FromDomain(s *catalog.ServiceItem) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.CategoryID = s.CategoryID
	m.DefaultPartnerID = s.DefaultPartnerID
	m.EligiblePartnerIDs = s.EligiblePartnerIDs
	m.EligibleDriverIDs = s.EligibleDriverIDs
	m.IsActive = s.IsActive
}

// CostPatternModel is the persistence model for cost pattern templates.
type CostPatternModel struct {
	BaseModel
	Name      string                 `gorm:"type:varchar(200);not null"`
	PackageID uuid.UUID              `gorm:"type:uuid;not null;index"`
	IsActive  bool                   `gorm:"not null;default:true;index"`
	Items     []CostPatternItemModel `gorm:"foreignKey:PatternID;references:ID"`
}

// TableName returns the table name for GORM
func (CostPatternModel) TableName() string {
	return "cost_patterns"
}

// ToDomain converts the persistence model to a domain CostPattern entity.
func (m *CostPatternModel) ToDomain() *catalog.CostPattern {
	pattern := &catalog.CostPattern{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		PackageID:  m.PackageID,
		IsActive:   m.IsActive,
	}
	for idx := range m.Items {
		pattern.Items = append(pattern.Items, *m.Items[idx].ToDomain())
	}
	return pattern
}

// FromDomain populates the persistence model from a domain CostPattern entity.
func (m *CostPatternModel) FromDomain(p *catalog.CostPattern) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.PackageID = p.PackageID
	m.IsActive = p.IsActive
	m.Items = m.Items[:0]
	for idx := range p.Items {
		var im CostPatternItemModel
		im.FromDomain(&p.Items[idx])
		m.Items = append(m.Items, im)
	}
}

// CostPatternItemModel is the persistence model for one templated pattern line.
type CostPatternItemModel struct {
	BaseModel
	PatternID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	ServiceItemID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	DefaultPartnerID *uuid.UUID        `gorm:"type:uuid"`
	DefaultUnitType  catalog.UnitType  `gorm:"type:varchar(20);not null"`
	DefaultQty       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:1"`
	DefaultPrice     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Position         int               `gorm:"not null;default:0"`
	ServiceItem      *ServiceItemModel `gorm:"foreignKey:ServiceItemID;references:ID"`
}

// TableName returns the table name for GORM
func (CostPatternItemModel) TableName() string {
	return "cost_pattern_items"
}

// ToDomain converts the persistence model to a domain CostPatternItem entity.
func (m *CostPatternItemModel) ToDomain() *catalog.CostPatternItem {
	item := &catalog.CostPatternItem{
		BaseEntity:       m.BaseModel.ToDomain(),
		PatternID:        m.PatternID,
		ServiceItemID:    m.ServiceItemID,
		DefaultPartnerID: m.DefaultPartnerID,
		DefaultUnitType:  m.DefaultUnitType,
		DefaultQty:       m.DefaultQty,
		DefaultPrice:     m.DefaultPrice,
		Position:         m.Position,
	}
	if m.ServiceItem != nil {
		item.ServiceItem = m.ServiceItem.ToDomain()
	}
	return item
}

// FromDomain populates the persistence model from a domain CostPatternItem entity.
func (m *CostPatternItemModel) FromDomain(i *catalog.CostPatternItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.PatternID = i.PatternID
	m.ServiceItemID = i.ServiceItemID
	m.DefaultPartnerID = i.DefaultPartnerID
	m.DefaultUnitType = i.DefaultUnitType
	m.DefaultQty = i.DefaultQty
	m.DefaultPrice = i.DefaultPrice
	m.Position = i.Position
}
