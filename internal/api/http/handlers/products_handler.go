package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// ProductsHandler exposes product lookup and administration.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.GetProduct(c.UserContext(), utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, _ := auth.IdentityFromContext(c)
	product, err := h.products.CreateProduct(c.UserContext(), identity, req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(product)
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, _ := auth.IdentityFromContext(c)
	product, err := h.products.UpdateProduct(c.UserContext(), identity, utils.CopyString(c.Params("id")), req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if err := h.products.DeleteProduct(c.UserContext(), identity, utils.CopyString(c.Params("id"))); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Product deleted successfully"})
}
