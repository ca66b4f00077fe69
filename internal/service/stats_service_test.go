package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository/memrepo"
)

func TestStatsService_ComputeStats(t *testing.T) {
	testCases := map[string]struct {
		products []domain.Product
		orders   []domain.Order
		count    int64
		revenue  string
		pending  int64
	}{
		"should report zeros for empty store": {
			revenue: "0",
		},
		"should sum totals and count pending statuses": {
			products: []domain.Product{{Name: "A"}, {Name: "B"}},
			orders: []domain.Order{
				{Status: domain.OrderStatusReceived, TotalAmount: 0.1},
				{Status: domain.OrderStatusProcessing, TotalAmount: 0.2},
				{Status: domain.OrderStatusPaid, TotalAmount: 10},
				{Status: domain.OrderStatusShipped, TotalAmount: 5.5},
				{Status: "Lost", TotalAmount: 1},
			},
			count:   2,
			revenue: "16.8",
			pending: 3,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			svc := NewStatsService(StatsDependencies{
				ProductRepo: memrepo.NewProducts(tc.products...),
				OrderRepo:   memrepo.NewOrders(tc.orders...),
			})

			stats, err := svc.ComputeStats(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.count, stats.ProductCount)
			assert.True(t, decimal.RequireFromString(tc.revenue).Equal(stats.TotalRevenue), "revenue %s", stats.TotalRevenue)
			assert.Equal(t, tc.pending, stats.PendingOrders)
		})
	}
}

func TestStatsService_StoreFailure(t *testing.T) {
	orders := memrepo.NewOrders()
	orders.Err = errors.New("store down")
	svc := NewStatsService(StatsDependencies{ProductRepo: memrepo.NewProducts(), OrderRepo: orders})

	_, err := svc.ComputeStats(context.Background())
	assert.Error(t, err)
}
