package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/cache"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// CatalogService answers read-only product listings.
type CatalogService struct {
	products repository.ProductRepository
	cache    cache.CatalogCache
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// CatalogDependencies bundles what the catalog reads from.
type CatalogDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       cache.CatalogCache
	Logger      *zap.Logger
	Metrics     *observability.Metrics
}

// NewCatalogService constructs the service. A nil cache disables caching.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	c := deps.Cache
	if c == nil {
		c = cache.NopCatalogCache{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{products: deps.ProductRepo, cache: c, logger: logger, metrics: deps.Metrics}
}

// ListByCategory returns products whose category equals the argument exactly.
// An unknown or empty category yields an empty slice.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.cached(ctx, cache.CategoryKey(category), func() ([]domain.Product, error) {
		return s.products.ListByCategory(ctx, category)
	})
}

// ListCategory lists one of the fixed storefront categories.
func (s *CatalogService) ListCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	return s.ListByCategory(ctx, category.String())
}

// ListAll returns the whole catalog.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.cached(ctx, cache.KeyAll, func() ([]domain.Product, error) {
		return s.products.List(ctx)
	})
}

func (s *CatalogService) cached(ctx context.Context, key string, load func() ([]domain.Product, error)) ([]domain.Product, error) {
	products, gen, err := s.cache.Get(ctx, key)
	if err == nil {
		s.metrics.CacheLookup(true)
		return products, nil
	}
	s.metrics.CacheLookup(false)
	// Only a clean miss yields a generation safe to store under.
	store := errors.Is(err, cache.ErrMiss)
	if !store {
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	products, err = load()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	if !store {
		return products, nil
	}
	if err := s.cache.Set(ctx, key, gen, products); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return products, nil
}
