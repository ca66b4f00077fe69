package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/events"
)

// NotificationService reports domain events. Today it only logs them.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventOrderPlaced, n.handleOrderPlaced)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
	for _, eventType := range []events.EventType{events.EventProductCreated, events.EventProductUpdated, events.EventProductDeleted} {
		n.dispatcher.Subscribe(eventType, n.handleProductChanged)
	}
}

func (n *NotificationService) handleOrderPlaced(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("order_id", event.AggregateID)}
	if payload, ok := event.Payload.(events.OrderPlacedPayload); ok {
		fields = append(fields,
			zap.String("customer", payload.CustomerName),
			zap.Int("items", payload.ItemCount),
			zap.Float64("total", payload.TotalAmount))
	}
	n.logger.Info("OrderPlaced", fields...)
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged",
		zap.String("order_id", event.AggregateID),
		zap.String("by", event.Actor.AccountID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleProductChanged(_ context.Context, event events.Event) error {
	n.logger.Info("ProductChanged",
		zap.String("event_type", string(event.Type)),
		zap.String("product_id", event.AggregateID),
		zap.String("by", event.Actor.AccountID))
	return nil
}
