package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// PlaceOrderInput is a checkout submitted by the storefront. Item prices and
// GrandTotal are taken as given.
type PlaceOrderInput struct {
	CustomerName string
	Items        []domain.LineItem
	GrandTotal   *float64
}

// PlaceOrderResult reports the stored order and the text shown to the shopper.
type PlaceOrderResult struct {
	Order   *domain.Order
	Message string
}

// OrderService coordinates checkout and order administration.
type OrderService struct {
	orders     repository.OrderRepository
	confirmer  Confirmer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	Confirmer  Confirmer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     deps.OrderRepo,
		confirmer:  deps.Confirmer,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
	}
}

// PlaceOrder stores a guest order with status Received. Items are stored
// exactly as submitted; nothing is checked against the catalog.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error) {
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" || len(input.Items) == 0 || input.GrandTotal == nil {
		return nil, apperrors.NewValidationError("incomplete order data", nil)
	}
	total := *input.GrandTotal
	if total < 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, apperrors.NewValidationError("grandTotal must be a non-negative number", nil)
	}

	order := &domain.Order{
		CustomerName: customer,
		UserID:       domain.GuestUserID,
		Status:       domain.OrderStatusReceived,
		TotalAmount:  total,
		Items:        append([]domain.LineItem{}, input.Items...),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.metrics.OrderPlaced()

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventOrderPlaced,
		AggregateID: order.ID,
		Payload: events.OrderPlacedPayload{
			CustomerName: order.CustomerName,
			ItemCount:    len(order.Items),
			TotalAmount:  order.TotalAmount,
		},
	})

	return &PlaceOrderResult{Order: order, Message: s.confirmation(ctx, order)}, nil
}

// ListOrders returns every order, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns a single order.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, orderLookupError(err)
	}
	return order, nil
}

// UpdateStatus sets an arbitrary status; transitions are not restricted.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.Identity, id, status string) (*domain.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.NewValidationError("status is required", nil)
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, orderLookupError(err)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventOrderStatusChanged,
		AggregateID: order.ID,
		Actor:       actorFromIdentity(actor),
		Payload:     events.OrderStatusChangedPayload{NewStatus: order.Status},
	})
	return order, nil
}

// confirmation never fails the checkout; the order is already stored.
func (s *OrderService) confirmation(ctx context.Context, order *domain.Order) string {
	if s.confirmer == nil {
		s.metrics.ConfirmationFallback()
		return DefaultConfirmationMessage
	}
	message, err := s.confirmer.Confirm(ctx, order)
	if err != nil {
		if !errors.Is(err, ErrConfirmationDisabled) {
			s.logger.Warn("confirmation text unavailable", zap.String("order_id", order.ID), zap.Error(err))
		}
		s.metrics.ConfirmationFallback()
		return DefaultConfirmationMessage
	}
	return message
}

func orderLookupError(err error) error {
	if apperrors.IsNotFound(err) {
		return apperrors.NewNotFound("order", nil)
	}
	return fmt.Errorf("order store: %w", err)
}
