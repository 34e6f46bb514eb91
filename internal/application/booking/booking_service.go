package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/application/eventlog"
	appsettlement "github.com/tourops/backend/internal/application/settlement"
	"github.com/tourops/backend/internal/domain/booking"
	"go.uber.org/zap"
)

// BookingService handles reads and the operator actions on a booking: driver
// assignment and the terminal overrides. Terminal overrides bypass the
// resolver on purpose; the resolver then keeps them sticky.
type BookingService struct {
	bookingRepo booking.Repository
	pipeline    *appsettlement.Pipeline
	events      *eventlog.Publisher
	log         *zap.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo booking.Repository, pipeline *appsettlement.Pipeline, log *zap.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		pipeline:    pipeline,
		events:      eventlog.NewPublisher(log),
		log:         log,
	}
}

// BookingResponse is the API view of a booking
type BookingResponse struct {
	ID               uuid.UUID       `json:"id"`
	ExternalRef      string          `json:"external_ref"`
	Channel          string          `json:"channel"`
	TourDate         time.Time       `json:"tour_date"`
	NumberOfAdult    int             `json:"number_of_adult"`
	NumberOfChild    int             `json:"number_of_child"`
	AssignedDriverID *uuid.UUID      `json:"assigned_driver_id"`
	Status           string          `json:"status"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Currency         string          `json:"currency"`
	IsPaid           bool            `json:"is_paid"`
	PaidAt           *time.Time      `json:"paid_at"`
}

func toBookingResponse(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID,
		ExternalRef:      b.ExternalRef,
		Channel:          string(b.Channel),
		TourDate:         b.TourDate,
		NumberOfAdult:    b.NumberOfAdult,
		NumberOfChild:    b.NumberOfChild,
		AssignedDriverID: b.AssignedDriverID,
		Status:           b.Status.String(),
		TotalPrice:       b.TotalPrice,
		Currency:         b.Currency,
		IsPaid:           b.IsPaid,
		PaidAt:           b.PaidAt,
	}
}

// GetBooking returns one booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookingResponse(b), nil
}

// AssignDriverRequest attaches a driver to a booking
type AssignDriverRequest struct {
	DriverID uuid.UUID `json:"driver_id" binding:"required"`
}

// AssignDriver attaches a driver and re-resolves the booking's status
func (s *BookingService) AssignDriver(ctx context.Context, id uuid.UUID, req AssignDriverRequest) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.AssignDriver(req.DriverID); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.pipeline.Run(ctx, b.ID)
	return s.GetBooking(ctx, id)
}

// Cancel applies the CANCELLED terminal override
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Cancel()
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.events.Publish(b)
	s.log.Info("booking cancelled", zap.String("booking_id", id.String()))
	return toBookingResponse(b), nil
}

// MarkNoShow applies the NO_SHOW terminal override
func (s *BookingService) MarkNoShow(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.MarkNoShow(); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("booking marked no-show", zap.String("booking_id", id.String()))
	return toBookingResponse(b), nil
}
