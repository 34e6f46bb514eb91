package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tourops/backend/internal/domain/catalog"
	"github.com/tourops/backend/internal/domain/shared"
	"github.com/tourops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTourItemCategoryRepository implements catalog.TourItemCategoryRepository using GORM
type GormTourItemCategoryRepository struct {
	db *gorm.DB
}

// NewGormTourItemCategoryRepository creates a new GormTourItemCategoryRepository
func NewGormTourItemCategoryRepository(db *gorm.DB) *GormTourItemCategoryRepository {
	return &GormTourItemCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormTourItemCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.TourItemCategory, error) {
	var model models.TourItemCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a category by its code
func (r *GormTourItemCategoryRepository) FindByCode(ctx context.Context, code string) (*catalog.TourItemCategory, error) {
	var model models.TourItemCategoryModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive finds all active categories ordered for display
func (r *GormTourItemCategoryRepository) FindAllActive(ctx context.Context) ([]catalog.TourItemCategory, error) {
	var found []models.TourItemCategoryModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	categories := make([]catalog.TourItemCategory, 0, len(found))
	for idx := range found {
		categories = append(categories, *found[idx].ToDomain())
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormTourItemCategoryRepository) Save(ctx context.Context, category *catalog.TourItemCategory) error {
	var model models.TourItemCategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).Save(&model).Error
}

// GormServiceItemRepository implements catalog.ServiceItemRepository using GORM
type GormServiceItemRepository struct {
	db *gorm.DB
}

// NewGormServiceItemRepository creates a new GormServiceItemRepository
func NewGormServiceItemRepository(db *gorm.DB) *GormServiceItemRepository {
	return &GormServiceItemRepository{db: db}
}

// FindByID finds a service item by ID with its category joined
func (r *GormServiceItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ServiceItem, error) {
	var model models.ServiceItemModel
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCategory finds all service items in a category
func (r *GormServiceItemRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.ServiceItem, error) {
	var found []models.ServiceItemModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	items := make([]catalog.ServiceItem, 0, len(found))
	for idx := range found {
		items = append(items, *found[idx].ToDomain())
	}
	return items, nil
}

// Save creates or updates a service item
func (r *GormServiceItemRepository) Save(ctx context.Context, item *catalog.ServiceItem) error {
	var model models.ServiceItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

// GormCostPatternRepository implements catalog.CostPatternRepository using GORM
type GormCostPatternRepository struct {
	db *gorm.DB
}

// NewGormCostPatternRepository creates a new GormCostPatternRepository
func NewGormCostPatternRepository(db *gorm.DB) *GormCostPatternRepository {
	return &GormCostPatternRepository{db: db}
}

// FindByID finds a pattern by ID without its items
func (r *GormCostPatternRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CostPattern, error) {
	var model models.CostPatternModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDWithItems loads the pattern with the full instantiation graph:
// items ordered by position, each with its service item and category.
func (r *GormCostPatternRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*catalog.CostPattern, error) {
	var model models.CostPatternModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.ServiceItem").
		Preload("Items.ServiceItem.Category").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPackage finds all active patterns for a tour package
func (r *GormCostPatternRepository) FindByPackage(ctx context.Context, packageID uuid.UUID) ([]catalog.CostPattern, error) {
	var found []models.CostPatternModel
	if err := r.db.WithContext(ctx).
		Where("package_id = ? AND is_active = ?", packageID, true).
		Order("name ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	patterns := make([]catalog.CostPattern, 0, len(found))
	for idx := range found {
		patterns = append(patterns, *found[idx].ToDomain())
	}
	return patterns, nil
}

// Save creates or updates a pattern with its items
func (r *GormCostPatternRepository) Save(ctx context.Context, pattern *catalog.CostPattern) error {
	var model models.CostPatternModel
	model.FromDomain(pattern)
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&model).Error
}

// Ensure the GORM repositories implement the catalog interfaces
var (
	_ catalog.TourItemCategoryRepository = (*GormTourItemCategoryRepository)(nil)
	_ catalog.ServiceItemRepository      = (*GormServiceItemRepository)(nil)
	_ catalog.CostPatternRepository      = (*GormCostPatternRepository)(nil)
)
