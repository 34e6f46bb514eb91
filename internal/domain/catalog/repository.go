package catalog

import (
	"context"

	"github.com/google/uuid"
)

// TourItemCategoryRepository provides access to category master data
type TourItemCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TourItemCategory, error)
	FindByCode(ctx context.Context, code string) (*TourItemCategory, error)
	FindAllActive(ctx context.Context) ([]TourItemCategory, error)
	Save(ctx context.Context, category *TourItemCategory) error
}

// ServiceItemRepository provides access to service item master data
type ServiceItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceItem, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]ServiceItem, error)
	Save(ctx context.Context, item *ServiceItem) error
}

// CostPatternRepository provides access to cost pattern templates
type CostPatternRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CostPattern, error)
	// FindByIDWithItems loads the pattern with its items, each joined to its
	// service item and category. Instantiation requires the full graph.
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*CostPattern, error)
	FindByPackage(ctx context.Context, packageID uuid.UUID) ([]CostPattern, error)
	Save(ctx context.Context, pattern *CostPattern) error
}
