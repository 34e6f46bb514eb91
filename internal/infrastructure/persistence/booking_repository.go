package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tourops/backend/internal/domain/booking"
	"github.com/tourops/backend/internal/domain/shared"
	"github.com/tourops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBookingRepository implements booking.Repository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by its ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalRef finds a booking by its upstream reference
func (r *GormBookingRepository) FindByExternalRef(ctx context.Context, externalRef string) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).
		Where("external_ref = ?", externalRef).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveIDs returns the IDs of all bookings in a non-terminal status
func (r *GormBookingRepository) FindActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.BookingModel{}).
		Where("status NOT IN ?", []booking.Status{booking.StatusCancelled, booking.StatusNoShow}).
		Order("tour_date ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Save creates or updates a booking
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := models.BookingModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormBookingRepository implements booking.Repository
var _ booking.Repository = (*GormBookingRepository)(nil)
