package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/application/eventlog"
	appsettlement "github.com/tourops/backend/internal/application/settlement"
	"github.com/tourops/backend/internal/domain/booking"
	"github.com/tourops/backend/internal/domain/shared"
	"github.com/tourops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Ingestion event types emitted by the upstream booking channels
const (
	EventTypeCreated   = "CREATED"
	EventTypeUpdated   = "UPDATED"
	EventTypeCancelled = "CANCELLED"
)

// BookingEventRequest is one ingestion event from the upstream channels.
// EventID deduplicates redeliveries.
type BookingEventRequest struct {
	EventID       string          `json:"event_id" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	ExternalRef   string          `json:"external_ref" binding:"required"`
	Channel       string          `json:"channel"`
	TourDate      time.Time       `json:"tour_date"`
	NumberOfAdult int             `json:"number_of_adult"`
	NumberOfChild int             `json:"number_of_child"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Currency      string          `json:"currency"`
}

// BookingEventResponse reports how an ingestion event was handled
type BookingEventResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
	Status    string    `json:"status"`
	Duplicate bool      `json:"duplicate"`
}

// EventService consumes booking lifecycle events from the ingestion
// subsystem. Redelivered events are dropped via the idempotency store; every
// applied event runs the post-commit pipeline.
type EventService struct {
	bookingRepo booking.Repository
	idempotency shared.IdempotencyStore
	dedupTTL    time.Duration
	pipeline    *appsettlement.Pipeline
	events      *eventlog.Publisher
	log         *zap.Logger
}

// NewEventService creates a new EventService
func NewEventService(bookingRepo booking.Repository, idempotency shared.IdempotencyStore, idemCfg shared.IdempotencyConfig, pipeline *appsettlement.Pipeline, log *zap.Logger) *EventService {
	return &EventService{
		bookingRepo: bookingRepo,
		idempotency: idempotency,
		dedupTTL:    idemCfg.TTL,
		pipeline:    pipeline,
		events:      eventlog.NewPublisher(log),
		log:         log,
	}
}

// HandleEvent applies one ingestion event
func (s *EventService) HandleEvent(ctx context.Context, req BookingEventRequest) (*BookingEventResponse, error) {
	processed, err := s.idempotency.IsProcessed(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if processed {
		s.log.Debug("duplicate ingestion event dropped", zap.String("event_id", req.EventID))
		b, err := s.bookingRepo.FindByExternalRef(ctx, req.ExternalRef)
		if err != nil {
			return nil, err
		}
		return &BookingEventResponse{BookingID: b.ID, Status: b.Status.String(), Duplicate: true}, nil
	}

	var b *booking.Booking
	switch req.Type {
	case EventTypeCreated:
		b, err = s.handleCreated(ctx, req)
	case EventTypeUpdated:
		b, err = s.handleUpdated(ctx, req)
	case EventTypeCancelled:
		b, err = s.handleCancelled(ctx, req)
	default:
		return nil, shared.NewDomainError("INVALID_EVENT", "Unknown booking event type")
	}
	if err != nil {
		return nil, err
	}
	s.events.Publish(b)

	if _, err := s.idempotency.MarkProcessed(ctx, req.EventID, s.dedupTTL); err != nil {
		// the next redelivery re-applies an idempotent mutation, so log only
		s.log.Warn("failed to mark event processed", zap.String("event_id", req.EventID), zap.Error(err))
	}

	s.pipeline.Run(ctx, b.ID)
	return &BookingEventResponse{BookingID: b.ID, Status: b.Status.String()}, nil
}

func (s *EventService) handleCreated(ctx context.Context, req BookingEventRequest) (*booking.Booking, error) {
	if _, err := s.bookingRepo.FindByExternalRef(ctx, req.ExternalRef); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !valueobject.Currency(currency).IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency code")
	}

	b, err := booking.NewBooking(req.ExternalRef, booking.Channel(req.Channel), req.TourDate, req.NumberOfAdult, req.NumberOfChild)
	if err != nil {
		return nil, err
	}
	b.TotalPrice = req.TotalPrice
	b.Currency = currency

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("booking ingested",
		zap.String("booking_id", b.ID.String()),
		zap.String("external_ref", b.ExternalRef),
		zap.String("channel", string(b.Channel)),
	)
	return b, nil
}

func (s *EventService) handleUpdated(ctx context.Context, req BookingEventRequest) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByExternalRef(ctx, req.ExternalRef)
	if err != nil {
		return nil, err
	}
	if err := b.ApplyUpdate(req.TourDate, req.NumberOfAdult, req.NumberOfChild); err != nil {
		return nil, err
	}
	if !req.TotalPrice.IsZero() {
		b.TotalPrice = req.TotalPrice
	}
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *EventService) handleCancelled(ctx context.Context, req BookingEventRequest) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByExternalRef(ctx, req.ExternalRef)
	if err != nil {
		return nil, err
	}
	b.Cancel()
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
