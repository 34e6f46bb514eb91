package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tourops/backend/internal/domain/catalog"
)

// CatalogService serves the master data the settlement UI picks from:
// item categories, service items and cost patterns.
type CatalogService struct {
	categoryRepo    catalog.TourItemCategoryRepository
	serviceItemRepo catalog.ServiceItemRepository
	patternRepo     catalog.CostPatternRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	categoryRepo catalog.TourItemCategoryRepository,
	serviceItemRepo catalog.ServiceItemRepository,
	patternRepo catalog.CostPatternRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo:    categoryRepo,
		serviceItemRepo: serviceItemRepo,
		patternRepo:     patternRepo,
	}
}

// ListCategories returns all active item categories in display order
func (s *CatalogService) ListCategories(ctx context.Context) ([]catalog.TourItemCategory, error) {
	return s.categoryRepo.FindAllActive(ctx)
}

// ListServiceItems returns the service items under one category
func (s *CatalogService) ListServiceItems(ctx context.Context, categoryID uuid.UUID) ([]catalog.ServiceItem, error) {
	return s.serviceItemRepo.FindByCategory(ctx, categoryID)
}

// GetServiceItem returns one service item with its category loaded
func (s *CatalogService) GetServiceItem(ctx context.Context, id uuid.UUID) (*catalog.ServiceItem, error) {
	return s.serviceItemRepo.FindByID(ctx, id)
}

// ListPatterns returns the active cost patterns for a tour package
func (s *CatalogService) ListPatterns(ctx context.Context, packageID uuid.UUID) ([]catalog.CostPattern, error) {
	return s.patternRepo.FindByPackage(ctx, packageID)
}

// GetPattern returns a cost pattern with its full item graph
func (s *CatalogService) GetPattern(ctx context.Context, id uuid.UUID) (*catalog.CostPattern, error) {
	return s.patternRepo.FindByIDWithItems(ctx, id)
}
