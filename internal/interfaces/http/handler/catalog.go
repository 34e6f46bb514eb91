package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/tourops/backend/internal/application/catalog"
)

// CatalogHandler serves read-only master data endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/categories", h.ListCategories)
		catalog.GET("/categories/:id/items", h.ListServiceItems)
		catalog.GET("/items/:id", h.GetServiceItem)
		catalog.GET("/packages/:id/patterns", h.ListPatterns)
		catalog.GET("/patterns/:id", h.GetPattern)
	}
}

// ListCategories returns all active item categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListServiceItems returns the service items under a category
func (h *CatalogHandler) ListServiceItems(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	items, err := h.catalogService.ListServiceItems(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetServiceItem returns one service item
func (h *CatalogHandler) GetServiceItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.catalogService.GetServiceItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// ListPatterns returns the active cost patterns for a package
func (h *CatalogHandler) ListPatterns(c *gin.Context) {
	packageID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid package ID")
		return
	}

	patterns, err := h.catalogService.ListPatterns(c.Request.Context(), packageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, patterns)
}

// GetPattern returns a cost pattern with its item graph
func (h *CatalogHandler) GetPattern(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid pattern ID")
		return
	}

	pattern, err := h.catalogService.GetPattern(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pattern)
}
