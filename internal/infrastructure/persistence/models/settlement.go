package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/catalog"
	"github.com/tourops/backend/internal/domain/settlement"
)

// BookingFinanceModel is the persistence model for the BookingFinance
// aggregate root. Exactly one row per booking.
type BookingFinanceModel struct {
	AggregateModel
	BookingID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
	PatternID   *uuid.UUID         `gorm:"type:uuid;index"`
	AssignedAt  time.Time          `gorm:"not null"`
	ValidatedAt *time.Time         `gorm:"index"`
	IsLocked    bool               `gorm:"not null;default:false"`
	Items       []FinanceItemModel `gorm:"foreignKey:FinanceID;references:ID"`
}

// TableName returns the table name for GORM
func (BookingFinanceModel) TableName() string {
	return "booking_finances"
}

// ToDomain converts the persistence model to a domain BookingFinance entity.
func (m *BookingFinanceModel) ToDomain() *settlement.BookingFinance {
	f := &settlement.BookingFinance{
		BookingID:   m.BookingID,
		PatternID:   m.PatternID,
		AssignedAt:  m.AssignedAt,
		ValidatedAt: m.ValidatedAt,
		IsLocked:    m.IsLocked,
	}
	m.PopulateAggregateRoot(&f.BaseAggregateRoot)
	for idx := range m.Items {
		f.Items = append(f.Items, *m.Items[idx].ToDomain())
	}
	return f
}

// FromDomain populates the persistence model from a domain BookingFinance entity.
func (m *BookingFinanceModel) FromDomain(f *settlement.BookingFinance) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.BookingID = f.BookingID
	m.PatternID = f.PatternID
	m.AssignedAt = f.AssignedAt
	m.ValidatedAt = f.ValidatedAt
	m.IsLocked = f.IsLocked
	m.Items = m.Items[:0]
	for idx := range f.Items {
		var im FinanceItemModel
		im.FromDomain(&f.Items[idx])
		m.Items = append(m.Items, im)
	}
}

// BookingFinanceModelFromDomain creates a new persistence model from a domain BookingFinance.
func BookingFinanceModelFromDomain(f *settlement.BookingFinance) *BookingFinanceModel {
	m := &BookingFinanceModel{}
	m.FromDomain(f)
	return m
}

// FinanceItemModel is the persistence model for one ledger line. Category
// policy fields are denormalized snapshots frozen at item creation.
type FinanceItemModel struct {
	BaseModel
	FinanceID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	ServiceItemID    *uuid.UUID               `gorm:"type:uuid;index"`
	NameSnapshot     string                   `gorm:"type:varchar(200);not null"`
	CategoryID       uuid.UUID                `gorm:"type:uuid;not null;index"`
	CategoryName     string                   `gorm:"type:varchar(200);not null"`
	IsCommission     bool                     `gorm:"not null;default:false"`
	AllowRelatedItem bool                     `gorm:"not null;default:false"`
	Direction        catalog.Direction        `gorm:"type:varchar(10);not null"`
	IsManual         bool                     `gorm:"not null;default:false"`
	UnitType         catalog.UnitType         `gorm:"type:varchar(20);not null"`
	UnitQty          decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	UnitPrice        decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Amount           decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DriverID         *uuid.UUID               `gorm:"type:uuid;index"`
	PartnerID        *uuid.UUID               `gorm:"type:uuid;index"`
	PayeeType        settlement.PayeeType     `gorm:"type:varchar(10);not null"`
	RelatedItemID    *uuid.UUID               `gorm:"type:uuid;index"`
	RelationType     *settlement.RelationType `gorm:"type:varchar(30)"`
	Paid             bool                     `gorm:"not null;default:false;index"`
	PaidAt           *time.Time
	PaidBy           string `gorm:"type:varchar(100)"`
	PaidNote         string `gorm:"type:varchar(500)"`
	Notes            string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FinanceItemModel) TableName() string {
	return "finance_items"
}

// ToDomain converts the persistence model to a domain FinanceItem entity.
func (m *FinanceItemModel) ToDomain() *settlement.FinanceItem {
	return &settlement.FinanceItem{
		BaseEntity:    m.BaseModel.ToDomain(),
		FinanceID:     m.FinanceID,
		ServiceItemID: m.ServiceItemID,
		NameSnapshot:  m.NameSnapshot,
		Snapshot: settlement.CategorySnapshot{
			CategoryID:       m.CategoryID,
			CategoryName:     m.CategoryName,
			IsCommission:     m.IsCommission,
			AllowRelatedItem: m.AllowRelatedItem,
		},
		Direction:     m.Direction,
		IsManual:      m.IsManual,
		UnitType:      m.UnitType,
		UnitQty:       m.UnitQty,
		UnitPrice:     m.UnitPrice,
		Amount:        m.Amount,
		DriverID:      m.DriverID,
		PartnerID:     m.PartnerID,
		PayeeType:     m.PayeeType,
		RelatedItemID: m.RelatedItemID,
		RelationType:  m.RelationType,
		Paid:          m.Paid,
		PaidAt:        m.PaidAt,
		PaidBy:        m.PaidBy,
		PaidNote:      m.PaidNote,
		Notes:         m.Notes,
	}
}

// FromDomain populates the persistence model from a domain FinanceItem entity.
func (m *FinanceItemModel) FromDomain(i *settlement.FinanceItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.FinanceID = i.FinanceID
	m.ServiceItemID = i.ServiceItemID
	m.NameSnapshot = i.NameSnapshot
	m.CategoryID = i.Snapshot.CategoryID
	m.CategoryName = i.Snapshot.CategoryName
	m.IsCommission = i.Snapshot.IsCommission
	m.AllowRelatedItem = i.Snapshot.AllowRelatedItem
	m.Direction = i.Direction
	m.IsManual = i.IsManual
	m.UnitType = i.UnitType
	m.UnitQty = i.UnitQty
	m.UnitPrice = i.UnitPrice
	m.Amount = i.Amount
	m.DriverID = i.DriverID
	m.PartnerID = i.PartnerID
	m.PayeeType = i.PayeeType
	m.RelatedItemID = i.RelatedItemID
	m.RelationType = i.RelationType
	m.Paid = i.Paid
	m.PaidAt = i.PaidAt
	m.PaidBy = i.PaidBy
	m.PaidNote = i.PaidNote
	m.Notes = i.Notes
}
