package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/cache"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository/memrepo"
	"github.com/spec-kit/storefront-service/internal/seed"
)

type fakeEntry struct {
	gen      cache.Generation
	products []domain.Product
}

type fakeCache struct {
	entries     map[string]fakeEntry
	gen         cache.Generation
	getErr      error
	setErr      error
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]fakeEntry{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]domain.Product, cache.Generation, error) {
	if f.getErr != nil {
		return nil, 0, f.getErr
	}
	entry, ok := f.entries[key]
	if !ok || entry.gen != f.gen {
		return nil, f.gen, cache.ErrMiss
	}
	return entry.products, f.gen, nil
}

func (f *fakeCache) Set(_ context.Context, key string, gen cache.Generation, products []domain.Product) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = fakeEntry{gen: gen, products: products}
	return nil
}

func (f *fakeCache) InvalidateAll(context.Context) error {
	f.invalidated++
	f.gen++
	return nil
}

// slowProducts runs afterRead between reading the store and returning, the
// window in which a concurrent admin write can land.
type slowProducts struct {
	*memrepo.Products
	afterRead func()
}

func (p *slowProducts) List(ctx context.Context) ([]domain.Product, error) {
	products, err := p.Products.List(ctx)
	if p.afterRead != nil {
		afterRead := p.afterRead
		p.afterRead = nil
		afterRead()
	}
	return products, err
}

func TestCatalogService_ListByCategory(t *testing.T) {
	products := memrepo.NewProducts(seed.SampleProducts()...)
	svc := NewCatalogService(CatalogDependencies{ProductRepo: products})
	ctx := context.Background()

	groceries, err := svc.ListCategory(ctx, domain.CategoryGroceries)
	require.NoError(t, err)
	require.Len(t, groceries, 5)

	var bananas *domain.Product
	for i := range groceries {
		assert.Equal(t, "Groceries", groceries[i].Category)
		if groceries[i].Name == "Organic Bananas" {
			bananas = &groceries[i]
		}
	}
	require.NotNil(t, bananas)
	assert.Equal(t, 0.79, bananas.Price)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 35)
}

func TestCatalogService_EmptyCategory(t *testing.T) {
	testCases := map[string]string{
		"should return empty slice for unused category": "Fashion",
		"should match category exactly":                 "groceries",
		"should return empty slice for blank category":  "",
	}

	for name, category := range testCases {
		t.Run(name, func(t *testing.T) {
			products := memrepo.NewProducts(domain.Product{Name: "Milk", Category: "Groceries", Price: 1})
			svc := NewCatalogService(CatalogDependencies{ProductRepo: products})

			result, err := svc.ListByCategory(context.Background(), category)
			require.NoError(t, err)
			assert.NotNil(t, result)
			assert.Empty(t, result)
		})
	}
}

func TestCatalogService_Cache(t *testing.T) {
	products := memrepo.NewProducts(domain.Product{Name: "Chips", Category: "Snacks", Price: 2.99})
	c := newFakeCache()
	svc := NewCatalogService(CatalogDependencies{ProductRepo: products, Cache: c})
	ctx := context.Background()

	first, err := svc.ListByCategory(ctx, "Snacks")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Contains(t, c.entries, cache.CategoryKey("Snacks"))

	// Served from cache even though the store now fails.
	products.Err = errors.New("store down")
	second, err := svc.ListByCategory(ctx, "Snacks")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCatalogService_CacheFailuresFallThrough(t *testing.T) {
	testCases := map[string]struct {
		getErr error
		setErr error
	}{
		"should ignore read failure":  {getErr: errors.New("redis: connection refused")},
		"should ignore write failure": {setErr: errors.New("redis: connection refused")},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			products := memrepo.NewProducts(domain.Product{Name: "Kettle", Category: "Appliances", Price: 29.99})
			c := newFakeCache()
			c.getErr = tc.getErr
			c.setErr = tc.setErr
			svc := NewCatalogService(CatalogDependencies{ProductRepo: products, Cache: c})

			result, err := svc.ListAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, result, 1)
			assert.Empty(t, c.entries)
		})
	}
}

func TestCatalogService_WriteDuringLoadIsNotCachedStale(t *testing.T) {
	products := &slowProducts{Products: memrepo.NewProducts(domain.Product{Name: "Chips", Category: "Snacks", Price: 2.99})}
	c := newFakeCache()
	catalog := NewCatalogService(CatalogDependencies{ProductRepo: products, Cache: c})
	admin := NewProductService(ProductDependencies{ProductRepo: products, Cache: c})
	ctx := context.Background()

	products.afterRead = func() {
		_, err := admin.CreateProduct(ctx, testAdmin, ProductInput{Name: str("Pretzels"), Category: str("Snacks"), Price: float(2)})
		require.NoError(t, err)
	}

	stale, err := catalog.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	fresh, err := catalog.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestCatalogService_StoreFailure(t *testing.T) {
	products := memrepo.NewProducts()
	products.Err = errors.New("store down")
	svc := NewCatalogService(CatalogDependencies{ProductRepo: products})

	_, err := svc.ListByCategory(context.Background(), "Snacks")
	assert.Error(t, err)
}
