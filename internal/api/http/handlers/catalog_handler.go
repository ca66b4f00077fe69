package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
)

// CatalogHandler serves public product listings.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Category returns the handler for GET /api/<slug> of one category.
func (h *CatalogHandler) Category(category domain.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := h.catalog.ListCategory(c.UserContext(), category)
		if err != nil {
			return err
		}
		return c.JSON(products)
	}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}
