package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/booking"
)

// BookingModel is the persistence model for the Booking aggregate root.
type BookingModel struct {
	AggregateModel
	ExternalRef      string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Channel          booking.Channel `gorm:"type:varchar(20);not null"`
	TourDate         time.Time       `gorm:"not null;index"`
	NumberOfAdult    int             `gorm:"not null"`
	NumberOfChild    int             `gorm:"not null"`
	AssignedDriverID *uuid.UUID      `gorm:"type:uuid;index"`
	Status           booking.Status  `gorm:"type:varchar(20);not null;index"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency         string          `gorm:"type:varchar(3);not null;default:'IDR'"`
	IsPaid           bool            `gorm:"not null;default:false;index"`
	PaidAt           *time.Time
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking entity.
func (m *BookingModel) ToDomain() *booking.Booking {
	b := &booking.Booking{
		ExternalRef:      m.ExternalRef,
		Channel:          m.Channel,
		TourDate:         m.TourDate,
		NumberOfAdult:    m.NumberOfAdult,
		NumberOfChild:    m.NumberOfChild,
		AssignedDriverID: m.AssignedDriverID,
		Status:           m.Status,
		TotalPrice:       m.TotalPrice,
		Currency:         m.Currency,
		IsPaid:           m.IsPaid,
		PaidAt:           m.PaidAt,
	}
	m.PopulateAggregateRoot(&b.BaseAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain Booking entity.
func (m *BookingModel) FromDomain(b *booking.Booking) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.ExternalRef = b.ExternalRef
	m.Channel = b.Channel
	m.TourDate = b.TourDate
	m.NumberOfAdult = b.NumberOfAdult
	m.NumberOfChild = b.NumberOfChild
	m.AssignedDriverID = b.AssignedDriverID
	m.Status = b.Status
	m.TotalPrice = b.TotalPrice
	m.Currency = b.Currency
	m.IsPaid = b.IsPaid
	m.PaidAt = b.PaidAt
}

// BookingModelFromDomain creates a new persistence model from a domain Booking.
func BookingModelFromDomain(b *booking.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(b)
	return m
}
