package dto

import (
	"encoding/json"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
)

// CartItem is one storefront cart entry as submitted at checkout.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	CustomerName string     `json:"customerName"`
	Items        []CartItem `json:"items"`
	GrandTotal   *float64   `json:"grandTotal"`
}

// ToInput maps cart items field-for-field onto line items.
func (r PlaceOrderRequest) ToInput() service.PlaceOrderInput {
	var items []domain.LineItem
	if r.Items != nil {
		items = make([]domain.LineItem, 0, len(r.Items))
		for _, item := range r.Items {
			items = append(items, domain.LineItem{
				ProductID: item.ID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
			})
		}
	}
	return service.PlaceOrderInput{CustomerName: r.CustomerName, Items: items, GrandTotal: r.GrandTotal}
}

// PlaceOrderResponse acknowledges a checkout.
type PlaceOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// UpdateStatusRequest changes an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse returns the updated order.
type UpdateStatusResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

// StatsResponse is the dashboard summary.
type StatsResponse struct {
	ProductCount  int64       `json:"productCount"`
	TotalRevenue  json.Number `json:"totalRevenue"`
	PendingOrders int64       `json:"pendingOrders"`
}

// NewStatsResponse renders revenue as an exact JSON number.
func NewStatsResponse(stats *service.Stats) StatsResponse {
	return StatsResponse{
		ProductCount:  stats.ProductCount,
		TotalRevenue:  json.Number(stats.TotalRevenue.String()),
		PendingOrders: stats.PendingOrders,
	}
}
