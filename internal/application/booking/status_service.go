package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tourops/backend/internal/application/eventlog"
	appsettlement "github.com/tourops/backend/internal/application/settlement"
	"github.com/tourops/backend/internal/domain/booking"
	"github.com/tourops/backend/internal/domain/settlement"
	"github.com/tourops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StatusService re-derives booking statuses from ledger and booking facts.
// Resolution is idempotent; it runs per booking after every mutation and for
// the whole active set in the periodic sweep.
type StatusService struct {
	bookingRepo booking.Repository
	financeRepo settlement.Repository
	events      *eventlog.Publisher
	log         *zap.Logger
}

// NewStatusService creates a new StatusService
func NewStatusService(bookingRepo booking.Repository, financeRepo settlement.Repository, log *zap.Logger) *StatusService {
	return &StatusService{
		bookingRepo: bookingRepo,
		financeRepo: financeRepo,
		events:      eventlog.NewPublisher(log),
		log:         log,
	}
}

// ResolveBooking recomputes one booking's status. Returns whether the stored
// status changed.
func (s *StatusService) ResolveBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	b, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return false, err
	}

	facts, err := s.financeFacts(ctx, bookingID)
	if err != nil {
		return false, err
	}

	prev := b.Status
	if !b.Resolve(facts, time.Now()) {
		return false, nil
	}
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return false, err
	}
	s.events.Publish(b)
	s.log.Info("booking status resolved",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", prev.String()),
		zap.String("to", b.Status.String()),
	)
	return true, nil
}

// ResyncResult reports a full status sweep
type ResyncResult struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
}

// ResyncAll recomputes the status of every active booking. The sweep also
// re-drives any post-commit hook that failed earlier; running it twice in a
// row yields zero further updates.
func (s *StatusService) ResyncAll(ctx context.Context) (*ResyncResult, error) {
	ids, err := s.bookingRepo.FindActiveIDs(ctx)
	if err != nil {
		return nil, err
	}

	result := &ResyncResult{Checked: len(ids)}
	for _, id := range ids {
		changed, err := s.ResolveBooking(ctx, id)
		if err != nil {
			s.log.Warn("status resync failed for booking",
				zap.String("booking_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		if changed {
			result.Updated++
		}
	}
	return result, nil
}

func (s *StatusService) financeFacts(ctx context.Context, bookingID uuid.UUID) (booking.FinanceFacts, error) {
	finance, err := s.financeRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return booking.FinanceFacts{}, nil
		}
		return booking.FinanceFacts{}, err
	}
	return booking.FinanceFacts{
		HasItems:        finance.HasItems(),
		AllItemsPaid:    finance.AllItemsPaid(),
		Validated:       finance.ValidatedAt != nil,
		PatternAssigned: finance.PatternID != nil,
	}, nil
}

// Hook exposes resolution as a post-commit pipeline step. It runs after
// settlement sync so the resolver sees up-to-date payment flags.
func (s *StatusService) Hook() appsettlement.Hook {
	return appsettlement.Hook{
		Name: "status_resolver",
		Run: func(ctx context.Context, bookingID uuid.UUID) error {
			_, err := s.ResolveBooking(ctx, bookingID)
			return err
		},
	}
}
