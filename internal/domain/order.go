package domain

import "time"

// Conventional order statuses. Status is free text; these are the values the
// storefront and dashboard understand.
const (
	OrderStatusReceived   = "Received"
	OrderStatusProcessing = "Processing"
	OrderStatusPaid       = "Paid"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
)

// GuestUserID marks orders placed without an authenticated account.
const GuestUserID = "guest"

// PendingStatuses are the statuses counted as not yet fulfilled.
var PendingStatuses = []string{OrderStatusReceived, OrderStatusProcessing, OrderStatusPaid}

// LineItem is a purchase-time snapshot of a cart entry.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is a placed checkout. TotalAmount and item prices are the values the
// client submitted and are never recomputed from the catalog.
type Order struct {
	ID           string     `json:"_id"`
	CustomerName string     `json:"customerName"`
	UserID       string     `json:"userId"`
	OrderDate    time.Time  `json:"orderDate"`
	Status       string     `json:"status"`
	TotalAmount  float64    `json:"totalAmount"`
	Items        []LineItem `json:"items"`
}
