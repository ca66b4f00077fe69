package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// Stats summarizes the store for the admin dashboard.
type Stats struct {
	ProductCount  int64
	TotalRevenue  decimal.Decimal
	PendingOrders int64
}

// StatsService computes dashboard aggregates on demand.
type StatsService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

// StatsDependencies bundles stores read by the stats service.
type StatsDependencies struct {
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
}

// NewStatsService constructs the service.
func NewStatsService(deps StatsDependencies) *StatsService {
	return &StatsService{products: deps.ProductRepo, orders: deps.OrderRepo}
}

// ComputeStats runs the three aggregates concurrently. Nothing is cached.
func (s *StatsService) ComputeStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{TotalRevenue: decimal.Zero}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.products.Count(gctx)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		stats.ProductCount = count
		return nil
	})
	g.Go(func() error {
		revenue, err := s.orders.TotalRevenue(gctx)
		if err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		stats.TotalRevenue = revenue
		return nil
	})
	g.Go(func() error {
		pending, err := s.orders.CountByStatus(gctx, domain.PendingStatuses)
		if err != nil {
			return fmt.Errorf("count pending orders: %w", err)
		}
		stats.PendingOrders = pending
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
