package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tourops/backend/internal/domain/settlement"
	"github.com/tourops/backend/internal/domain/shared"
	"github.com/tourops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFinanceRepository implements settlement.Repository using GORM
type GormFinanceRepository struct {
	db *gorm.DB
}

// NewGormFinanceRepository creates a new GormFinanceRepository
func NewGormFinanceRepository(db *gorm.DB) *GormFinanceRepository {
	return &GormFinanceRepository{db: db}
}

// FindByBookingID finds the ledger for a booking with its items
func (r *GormFinanceRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*settlement.BookingFinance, error) {
	var model models.BookingFinanceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("booking_id = ?", bookingID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByItemID resolves the ledger owning the given item
func (r *GormFinanceRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*settlement.BookingFinance, error) {
	var financeIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.FinanceItemModel{}).
		Where("id = ?", itemID).
		Limit(1).
		Pluck("finance_id", &financeIDs).Error; err != nil {
		return nil, err
	}
	if len(financeIDs) == 0 {
		return nil, shared.ErrNotFound
	}
	return r.findByID(ctx, financeIDs[0])
}

// FindOwners returns the distinct ledgers owning any of the given items
func (r *GormFinanceRepository) FindOwners(ctx context.Context, itemIDs []uuid.UUID) ([]settlement.BookingFinance, error) {
	var financeIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.FinanceItemModel{}).
		Where("id IN ?", itemIDs).
		Distinct().
		Pluck("finance_id", &financeIDs).Error; err != nil {
		return nil, err
	}

	ledgers := make([]settlement.BookingFinance, 0, len(financeIDs))
	for _, id := range financeIDs {
		finance, err := r.findByID(ctx, id)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, *finance)
	}
	return ledgers, nil
}

// Replace persists the aggregate as an atomic replace-set. The finance row is
// locked FOR UPDATE for the duration of the transaction so two concurrent
// reassignments serialize instead of interleaving deletes and inserts.
func (r *GormFinanceRepository) Replace(ctx context.Context, finance *settlement.BookingFinance) error {
	model := models.BookingFinanceModelFromDomain(finance)
	items := model.Items
	model.Items = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.BookingFinanceModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_id = ?", model.BookingID).
			First(&existing).Error
		switch {
		case err == nil:
			// keep the stored primary key; the aggregate may have been built fresh
			model.ID = existing.ID
			model.Version = existing.Version + 1
			for idx := range items {
				items[idx].FinanceID = existing.ID
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first assignment, nothing to lock yet
		default:
			return err
		}

		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("finance_id = ?", model.ID).
			Delete(&models.FinanceItemModel{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// Save persists the finance row and upserts its current items without
// deleting absent ones. The finance row is locked FOR UPDATE and its stored
// version compared against the aggregate's loaded version, so a Save racing a
// Replace (or another Save) either serializes behind it or fails with
// ErrConflict instead of writing over it.
func (r *GormFinanceRepository) Save(ctx context.Context, finance *settlement.BookingFinance) error {
	model := models.BookingFinanceModelFromDomain(finance)
	items := model.Items
	model.Items = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.BookingFinanceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "id = ?", model.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if current.Version != model.Version {
			return shared.ErrConflict
		}
		model.Version = current.Version + 1

		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&items).Error
	})
}

// ListByValidation lists ledgers by validation state, items included
func (r *GormFinanceRepository) ListByValidation(ctx context.Context, validated bool) ([]settlement.BookingFinance, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	if validated {
		query = query.Where("validated_at IS NOT NULL").Order("validated_at DESC")
	} else {
		query = query.Where("validated_at IS NULL").Order("assigned_at ASC")
	}

	var found []models.BookingFinanceModel
	if err := query.Find(&found).Error; err != nil {
		return nil, err
	}
	ledgers := make([]settlement.BookingFinance, 0, len(found))
	for idx := range found {
		ledgers = append(ledgers, *found[idx].ToDomain())
	}
	return ledgers, nil
}

func (r *GormFinanceRepository) findByID(ctx context.Context, id uuid.UUID) (*settlement.BookingFinance, error) {
	var model models.BookingFinanceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormFinanceRepository implements settlement.Repository
var _ settlement.Repository = (*GormFinanceRepository)(nil)
