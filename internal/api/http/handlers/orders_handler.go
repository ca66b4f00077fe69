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

// OrdersHandler exposes checkout and order administration.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Place handles POST /api/orders. No authentication is required.
func (h *OrdersHandler) Place(c *fiber.Ctx) error {
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.orders.PlaceOrder(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.PlaceOrderResponse{
		Message: result.Message,
		OrderID: result.Order.ID,
	})
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.GetOrder(c.UserContext(), utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// UpdateStatus handles PUT /api/orders/:id.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, _ := auth.IdentityFromContext(c)
	order, err := h.orders.UpdateStatus(c.UserContext(), identity, utils.CopyString(c.Params("id")), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateStatusResponse{Message: "Order status updated", Order: order})
}
