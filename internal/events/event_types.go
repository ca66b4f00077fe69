package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventProductCreated     EventType = "product_created"
	EventProductUpdated     EventType = "product_updated"
	EventProductDeleted     EventType = "product_deleted"
)

// Actor identifies who triggered an event. AccountID is empty for guests.
type Actor struct {
	AccountID string `json:"account_id,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	AggregateID string      `json:"aggregate_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	CustomerName string  `json:"customer_name"`
	ItemCount    int     `json:"item_count"`
	TotalAmount  float64 `json:"total_amount"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	NewStatus string `json:"new_status"`
}

// ProductPayload accompanies product lifecycle events.
type ProductPayload struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}
