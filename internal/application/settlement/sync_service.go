package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tourops/backend/internal/domain/booking"
	"github.com/tourops/backend/internal/domain/settlement"
	"github.com/tourops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SyncService reconciles "all ledger items paid" into the booking-level
// payment flags. It only ever moves flags forward and is safe to re-run.
type SyncService struct {
	bookingRepo booking.Repository
	financeRepo settlement.Repository
	log         *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(bookingRepo booking.Repository, financeRepo settlement.Repository, log *zap.Logger) *SyncService {
	return &SyncService{
		bookingRepo: bookingRepo,
		financeRepo: financeRepo,
		log:         log,
	}
}

// SyncBookingSettlementStatus sets booking.isPaid for every given booking
// whose ledger is non-empty and fully paid, provided the booking is still in
// an active status. Idempotent; bookings already paid are left untouched.
func (s *SyncService) SyncBookingSettlementStatus(ctx context.Context, bookingIDs ...uuid.UUID) error {
	for _, bookingID := range bookingIDs {
		if err := s.syncOne(ctx, bookingID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyncService) syncOne(ctx context.Context, bookingID uuid.UUID) error {
	finance, err := s.financeRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil // no ledger yet, nothing to sync
		}
		return err
	}
	if !finance.HasItems() || !finance.AllItemsPaid() {
		return nil
	}

	b, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !b.Status.IsActive() || b.IsPaid {
		return nil
	}

	paidAt := time.Now()
	if latest := finance.LatestPaidAt(); latest != nil {
		paidAt = *latest
	}
	b.MarkPaid(paidAt)

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return err
	}
	s.log.Info("booking settlement synced",
		zap.String("booking_id", bookingID.String()),
		zap.Time("paid_at", paidAt),
	)
	return nil
}

// Hook exposes the sync as a post-commit pipeline step
func (s *SyncService) Hook() Hook {
	return Hook{
		Name: "settlement_sync",
		Run: func(ctx context.Context, bookingID uuid.UUID) error {
			return s.SyncBookingSettlementStatus(ctx, bookingID)
		},
	}
}
