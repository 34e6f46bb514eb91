package booking

import (
	"github.com/tourops/backend/internal/domain/shared"
)

// Event types for the Booking aggregate
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
	EventStatusResolved   = "booking.status_resolved"
)

const aggregateTypeBooking = "Booking"

// BookingCreatedEvent is raised when a booking is first ingested
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	ExternalRef string `json:"external_ref"`
	Channel     string `json:"channel"`
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventBookingCreated, aggregateTypeBooking, b.ID),
		ExternalRef:     b.ExternalRef,
		Channel:         string(b.Channel),
	}
}

// BookingUpdatedEvent is raised when an external change event is applied
type BookingUpdatedEvent struct {
	shared.BaseDomainEvent
	ExternalRef string `json:"external_ref"`
}

// NewBookingUpdatedEvent creates a new BookingUpdatedEvent
func NewBookingUpdatedEvent(b *Booking) *BookingUpdatedEvent {
	return &BookingUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventBookingUpdated, aggregateTypeBooking, b.ID),
		ExternalRef:     b.ExternalRef,
	}
}

// StatusResolvedEvent is raised when the resolver moves a booking to a new status
type StatusResolvedEvent struct {
	shared.BaseDomainEvent
	ExternalRef string `json:"external_ref"`
	Status      string `json:"status"`
}

// NewStatusResolvedEvent creates a new StatusResolvedEvent
func NewStatusResolvedEvent(b *Booking) *StatusResolvedEvent {
	return &StatusResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStatusResolved, aggregateTypeBooking, b.ID),
		ExternalRef:     b.ExternalRef,
		Status:          b.Status.String(),
	}
}

// BookingCancelledEvent is raised on the terminal cancel override
type BookingCancelledEvent struct {
	shared.BaseDomainEvent
	ExternalRef string `json:"external_ref"`
}

// NewBookingCancelledEvent creates a new BookingCancelledEvent
func NewBookingCancelledEvent(b *Booking) *BookingCancelledEvent {
	return &BookingCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventBookingCancelled, aggregateTypeBooking, b.ID),
		ExternalRef:     b.ExternalRef,
	}
}
