package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/shared"
)

// Channel identifies the sales channel a booking arrived from
type Channel string

const (
	ChannelDirect   Channel = "DIRECT"
	ChannelOTA      Channel = "OTA"
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelReseller Channel = "RESELLER"
)

// Booking is produced by the external ingestion subsystem. This core owns its
// status (via the resolver), its settlement flags, and the terminal overrides.
type Booking struct {
	shared.BaseAggregateRoot
	ExternalRef      string          `json:"external_ref"`
	Channel          Channel         `json:"channel"`
	TourDate         time.Time       `json:"tour_date"`
	NumberOfAdult    int             `json:"number_of_adult"`
	NumberOfChild    int             `json:"number_of_child"`
	AssignedDriverID *uuid.UUID      `json:"assigned_driver_id"`
	Status           Status          `json:"status"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Currency         string          `json:"currency"`
	IsPaid           bool            `json:"is_paid"`
	PaidAt           *time.Time      `json:"paid_at"`
}

// NewBooking creates a freshly ingested booking in status NEW
func NewBooking(externalRef string, channel Channel, tourDate time.Time, adults, children int) (*Booking, error) {
	if externalRef == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Booking external reference cannot be empty")
	}
	if adults < 0 || children < 0 {
		return nil, shared.NewDomainError("INVALID_PAX", "Pax counts cannot be negative")
	}
	if adults+children == 0 {
		return nil, shared.NewDomainError("INVALID_PAX", "Booking must have at least one pax")
	}

	b := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalRef:       externalRef,
		Channel:           channel,
		TourDate:          tourDate,
		NumberOfAdult:     adults,
		NumberOfChild:     children,
		Status:            StatusNew,
	}
	b.AddDomainEvent(NewBookingCreatedEvent(b))
	return b, nil
}

// ApplyUpdate applies an externally signaled change event. Pax counts and
// tour date are replaced and the booking drops into UPDATED for manual
// re-review. Terminal bookings reject updates.
func (b *Booking) ApplyUpdate(tourDate time.Time, adults, children int) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a terminal booking")
	}
	if adults < 0 || children < 0 || adults+children == 0 {
		return shared.NewDomainError("INVALID_PAX", "Pax counts must describe at least one pax")
	}
	b.TourDate = tourDate
	b.NumberOfAdult = adults
	b.NumberOfChild = children
	b.Status = StatusUpdated
	b.Touch()
	b.AddDomainEvent(NewBookingUpdatedEvent(b))
	return nil
}

// Cancel marks the booking CANCELLED. Terminal; only an external actor calls this.
func (b *Booking) Cancel() {
	if b.Status == StatusCancelled {
		return
	}
	b.Status = StatusCancelled
	b.Touch()
	b.AddDomainEvent(NewBookingCancelledEvent(b))
}

// MarkNoShow marks the booking NO_SHOW. Terminal; only an external actor calls this.
func (b *Booking) MarkNoShow() error {
	if b.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled booking cannot become no-show")
	}
	b.Status = StatusNoShow
	b.Touch()
	return nil
}

// AssignDriver attaches a driver to the booking
func (b *Booking) AssignDriver(driverID uuid.UUID) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot assign a driver to a terminal booking")
	}
	if driverID == uuid.Nil {
		return shared.NewDomainError("INVALID_DRIVER", "Driver ID cannot be empty")
	}
	b.AssignedDriverID = &driverID
	b.Touch()
	return nil
}

// MarkPaid sets the booking-level settlement flags. Forward-only: a paid
// booking is never un-paid, and an existing paidAt is preserved.
func (b *Booking) MarkPaid(paidAt time.Time) {
	if b.IsPaid {
		return
	}
	b.IsPaid = true
	if b.PaidAt == nil {
		b.PaidAt = &paidAt
	}
	b.Touch()
}

// SetStatus replaces the stored status with a resolver-derived one.
// Returns true if the status actually changed.
func (b *Booking) SetStatus(next Status) bool {
	if b.Status == next {
		return false
	}
	b.Status = next
	b.Touch()
	b.AddDomainEvent(NewStatusResolvedEvent(b))
	return true
}

// DriverAssigned returns true if a driver is attached
func (b *Booking) DriverAssigned() bool {
	return b.AssignedDriverID != nil && *b.AssignedDriverID != uuid.Nil
}
