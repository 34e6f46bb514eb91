package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/application/eventlog"
	"github.com/tourops/backend/internal/domain/booking"
	"github.com/tourops/backend/internal/domain/catalog"
	"github.com/tourops/backend/internal/domain/settlement"
	"github.com/tourops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CommissionCategoryCode is the category that split commission entries are
// recorded under. Seeded by migration.
const CommissionCategoryCode = "COMMISSION"

// FinanceService orchestrates ledger mutations: pattern assignment, manual
// edits, locking, validation, commission splits and bulk settlement. Every
// mutation runs the post-commit pipeline for the affected bookings.
type FinanceService struct {
	bookingRepo  booking.Repository
	financeRepo  settlement.Repository
	patternRepo  catalog.CostPatternRepository
	categoryRepo catalog.TourItemCategoryRepository
	pipeline     *Pipeline
	events       *eventlog.Publisher
	log          *zap.Logger
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(
	bookingRepo booking.Repository,
	financeRepo settlement.Repository,
	patternRepo catalog.CostPatternRepository,
	categoryRepo catalog.TourItemCategoryRepository,
	pipeline *Pipeline,
	log *zap.Logger,
) *FinanceService {
	return &FinanceService{
		bookingRepo:  bookingRepo,
		financeRepo:  financeRepo,
		patternRepo:  patternRepo,
		categoryRepo: categoryRepo,
		pipeline:     pipeline,
		events:       eventlog.NewPublisher(log),
		log:          log,
	}
}

// AssignPatternRequest selects a cost pattern for a booking's ledger
type AssignPatternRequest struct {
	PatternID uuid.UUID `json:"pattern_id" binding:"required"`
}

// AssignPattern instantiates the pattern against the booking and atomically
// replaces the ledger's item set. Reassignment fully supersedes prior items,
// including manual ones. A locked ledger rejects reassignment.
func (s *FinanceService) AssignPattern(ctx context.Context, bookingID uuid.UUID, req AssignPatternRequest) (*FinanceResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	pattern, err := s.patternRepo.FindByIDWithItems(ctx, req.PatternID)
	if err != nil {
		return nil, err
	}

	finance, err := s.financeRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		finance, err = settlement.NewBookingFinance(bookingID)
		if err != nil {
			return nil, err
		}
	}

	items, err := settlement.BuildItemsFromPattern(b, pattern)
	if err != nil {
		return nil, err
	}
	if err := finance.ReplaceItems(pattern.ID, items); err != nil {
		return nil, err
	}
	if err := s.financeRepo.Replace(ctx, finance); err != nil {
		return nil, err
	}
	s.events.Publish(finance)

	s.log.Info("pattern assigned",
		zap.String("booking_id", bookingID.String()),
		zap.String("pattern_id", pattern.ID.String()),
		zap.Int("item_count", len(items)),
	)
	s.pipeline.Run(ctx, bookingID)
	return toFinanceResponse(finance), nil
}

// GetFinance returns the ledger for a booking
func (s *FinanceService) GetFinance(ctx context.Context, bookingID uuid.UUID) (*FinanceResponse, error) {
	finance, err := s.financeRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return toFinanceResponse(finance), nil
}

// PatchItemRequest carries a manual edit for one ledger item. Omitted fields
// are left unchanged; explicit nulls on driver/partner detach the payee.
type PatchItemRequest struct {
	UnitQty      *decimal.Decimal `json:"unit_qty"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Direction    *string          `json:"direction"`
	UnitType     *string          `json:"unit_type"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	DriverID     *uuid.UUID       `json:"driver_id"`
	ClearDriver  bool             `json:"clear_driver"`
	PartnerID    *uuid.UUID       `json:"partner_id"`
	ClearPartner bool             `json:"clear_partner"`
	Paid         *bool            `json:"paid"`
	PaidAt       *time.Time       `json:"paid_at"`
	PaidBy       *string          `json:"paid_by"`
	PaidNote     *string          `json:"paid_note"`
	Notes        *string          `json:"notes"`
}

// PatchItem applies a manual edit to one ledger item, resolving its owning
// ledger first. Amount and payee type are re-derived server-side.
func (s *FinanceService) PatchItem(ctx context.Context, itemID uuid.UUID, req PatchItemRequest) (*ItemResponse, error) {
	finance, err := s.financeRepo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	patch := settlement.ItemPatch{
		UnitQty:      req.UnitQty,
		UnitPrice:    req.UnitPrice,
		DriverID:     req.DriverID,
		ClearDriver:  req.ClearDriver,
		PartnerID:    req.PartnerID,
		ClearPartner: req.ClearPartner,
		Paid:         req.Paid,
		PaidAt:       req.PaidAt,
		PaidBy:       req.PaidBy,
		PaidNote:     req.PaidNote,
		Notes:        req.Notes,
	}
	if req.Direction != nil {
		d := catalog.Direction(*req.Direction)
		patch.Direction = &d
	}
	if req.UnitType != nil {
		u := catalog.UnitType(*req.UnitType)
		patch.UnitType = &u
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		snapshot := settlement.SnapshotOf(category)
		patch.Snapshot = &snapshot
	}

	item, err := finance.PatchItem(itemID, patch)
	if err != nil {
		return nil, err
	}
	if err := s.financeRepo.Save(ctx, finance); err != nil {
		return nil, err
	}
	s.events.Publish(finance)

	s.pipeline.Run(ctx, finance.BookingID)
	resp := toItemResponse(item)
	return &resp, nil
}

// AddManualItemRequest appends a staff-entered ledger line
type AddManualItemRequest struct {
	Name       string          `json:"name" binding:"required"`
	CategoryID uuid.UUID       `json:"category_id" binding:"required"`
	Direction  string          `json:"direction" binding:"required"`
	UnitQty    decimal.Decimal `json:"unit_qty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// AddManualItem appends a manual line to the booking's ledger
func (s *FinanceService) AddManualItem(ctx context.Context, bookingID uuid.UUID, req AddManualItemRequest) (*ItemResponse, error) {
	finance, err := s.financeRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	item, err := finance.AddManualItem(req.Name, settlement.SnapshotOf(category), catalog.Direction(req.Direction), req.UnitQty, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := s.financeRepo.Save(ctx, finance); err != nil {
		return nil, err
	}
	s.events.Publish(finance)

	s.pipeline.Run(ctx, bookingID)
	resp := toItemResponse(item)
	return &resp, nil
}

// SplitCommissionRequest splits a commission-bearing item's gross amount
type SplitCommissionRequest struct {
	DriverCommission decimal.Decimal `json:"driver_commission"`
	DriverID         *uuid.UUID      `json:"driver_id"`
}

// SplitCommission expands a commission-bearing source item into linked
// driver-cut and remainder entries. The driver defaults to the source item's
// driver, then the booking's assigned driver.
func (s *FinanceService) SplitCommission(ctx context.Context, itemID uuid.UUID, req SplitCommissionRequest) (*FinanceResponse, error) {
	finance, err := s.financeRepo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByCode(ctx, CommissionCategoryCode)
	if err != nil {
		return nil, err
	}

	driverID := req.DriverID
	if driverID == nil {
		source, err := finance.Item(itemID)
		if err != nil {
			return nil, err
		}
		driverID = source.DriverID
	}
	if driverID == nil {
		b, err := s.bookingRepo.FindByID(ctx, finance.BookingID)
		if err != nil {
			return nil, err
		}
		driverID = b.AssignedDriverID
	}

	created, err := finance.SplitCommissionItem(itemID, req.DriverCommission, settlement.SnapshotOf(category), driverID)
	if err != nil {
		return nil, err
	}
	if err := s.financeRepo.Save(ctx, finance); err != nil {
		return nil, err
	}
	s.events.Publish(finance)

	s.log.Info("commission split",
		zap.String("booking_id", finance.BookingID.String()),
		zap.String("source_item_id", itemID.String()),
		zap.Int("created", len(created)),
	)
	s.pipeline.Run(ctx, finance.BookingID)
	return toFinanceResponse(finance), nil
}

// BulkSettleRequest marks ledger items paid across bookings
type BulkSettleRequest struct {
	ItemIDs  []uuid.UUID `json:"item_ids" binding:"required"`
	PaidBy   string      `json:"paid_by" binding:"required"`
	PaidNote string      `json:"paid_note"`
	PaidAt   *time.Time  `json:"paid_at"`
}

// BulkSettleResponse reports the outcome of a settlement run
type BulkSettleResponse struct {
	SettledItemIDs []uuid.UUID `json:"settled_item_ids"`
	SkippedLedgers int         `json:"skipped_ledgers"`
}

// BulkSettle marks the given items paid. Items on ledgers that are not
// settle-eligible (validated and locked) are skipped, as are already paid
// items. Each affected booking runs the post-commit pipeline.
func (s *FinanceService) BulkSettle(ctx context.Context, req BulkSettleRequest) (*BulkSettleResponse, error) {
	if len(req.ItemIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No item IDs given")
	}
	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	owners, err := s.financeRepo.FindOwners(ctx, req.ItemIDs)
	if err != nil {
		return nil, err
	}

	resp := &BulkSettleResponse{}
	var affected []uuid.UUID
	for idx := range owners {
		finance := &owners[idx]
		if !finance.SettleEligible() {
			resp.SkippedLedgers++
			s.log.Warn("settlement skipped, ledger not eligible",
				zap.String("booking_id", finance.BookingID.String()),
			)
			continue
		}
		settled, err := finance.SettleItems(req.ItemIDs, req.PaidBy, req.PaidNote, paidAt)
		if err != nil {
			return nil, err
		}
		if len(settled) == 0 {
			continue
		}
		if err := s.financeRepo.Save(ctx, finance); err != nil {
			return nil, err
		}
		s.events.Publish(finance)
		resp.SettledItemIDs = append(resp.SettledItemIDs, settled...)
		affected = append(affected, finance.BookingID)
	}

	s.pipeline.Run(ctx, affected...)
	return resp, nil
}

// SetLockRequest toggles the ledger lock
type SetLockRequest struct {
	IsLocked *bool `json:"is_locked" binding:"required"`
}

// SetLock toggles the ledger lock for a booking. Unlocking is the only
// mutation permitted while locked.
func (s *FinanceService) SetLock(ctx context.Context, bookingID uuid.UUID, req SetLockRequest) (*FinanceResponse, error) {
	finance, err := s.financeRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	finance.SetLocked(*req.IsLocked)
	if err := s.financeRepo.Save(ctx, finance); err != nil {
		return nil, err
	}
	s.events.Publish(finance)
	return toFinanceResponse(finance), nil
}

// Validate marks the booking's ledger reviewed, locking it
func (s *FinanceService) Validate(ctx context.Context, bookingID uuid.UUID) (*FinanceResponse, error) {
	finance, err := s.financeRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := finance.Validate(time.Now()); err != nil {
		return nil, err
	}
	if err := s.financeRepo.Save(ctx, finance); err != nil {
		return nil, err
	}
	s.events.Publish(finance)
	s.pipeline.Run(ctx, bookingID)
	return toFinanceResponse(finance), nil
}

// Unvalidate clears the validation mark and releases the lock
func (s *FinanceService) Unvalidate(ctx context.Context, bookingID uuid.UUID) (*FinanceResponse, error) {
	finance, err := s.financeRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := finance.Unvalidate(); err != nil {
		return nil, err
	}
	if err := s.financeRepo.Save(ctx, finance); err != nil {
		return nil, err
	}
	s.events.Publish(finance)
	s.pipeline.Run(ctx, bookingID)
	return toFinanceResponse(finance), nil
}

// ValidationEntry is one row of the validation worklist
type ValidationEntry struct {
	BookingID   uuid.UUID          `json:"booking_id"`
	PatternID   *uuid.UUID         `json:"pattern_id"`
	ValidatedAt *time.Time         `json:"validated_at"`
	IsLocked    bool               `json:"is_locked"`
	ItemCount   int                `json:"item_count"`
	Summary     settlement.Summary `json:"summary"`
}

// ListValidation lists ledgers by validation state with per-booking totals
func (s *FinanceService) ListValidation(ctx context.Context, validated bool) ([]ValidationEntry, error) {
	ledgers, err := s.financeRepo.ListByValidation(ctx, validated)
	if err != nil {
		return nil, err
	}
	entries := make([]ValidationEntry, 0, len(ledgers))
	for idx := range ledgers {
		f := &ledgers[idx]
		entries = append(entries, ValidationEntry{
			BookingID:   f.BookingID,
			PatternID:   f.PatternID,
			ValidatedAt: f.ValidatedAt,
			IsLocked:    f.IsLocked,
			ItemCount:   len(f.Items),
			Summary:     f.Summarize(),
		})
	}
	return entries, nil
}
