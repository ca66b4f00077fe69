package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/cache"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// ProductInput carries product fields. Nil fields are absent: on create they
// fail validation when required, on update they keep the stored value.
type ProductInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	Image       *string
}

// ProductService handles administrative catalog changes.
type ProductService struct {
	products   repository.ProductRepository
	cache      cache.CatalogCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProductDependencies bundles collaborators for product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       cache.CatalogCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	c := deps.Cache
	if c == nil {
		c = cache.NopCatalogCache{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products:   deps.ProductRepo,
		cache:      c,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// GetProduct returns a single product.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}
	return product, nil
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, actor *domain.Identity, input ProductInput) (*domain.Product, error) {
	product := &domain.Product{}
	applyProductInput(product, input)
	if err := validateProduct(product, input.Price != nil); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.afterWrite(ctx, events.EventProductCreated, actor, product)
	return product, nil
}

// UpdateProduct merges the supplied fields into the stored product and
// re-validates the result.
func (s *ProductService) UpdateProduct(ctx context.Context, actor *domain.Identity, id string, input ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}

	applyProductInput(product, input)
	if err := validateProduct(product, true); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, productLookupError(err)
	}
	s.afterWrite(ctx, events.EventProductUpdated, actor, product)
	return product, nil
}

// DeleteProduct removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, actor *domain.Identity, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return productLookupError(err)
	}
	s.afterWrite(ctx, events.EventProductDeleted, actor, &domain.Product{ID: id})
	return nil
}

func (s *ProductService) afterWrite(ctx context.Context, eventType events.EventType, actor *domain.Identity, product *domain.Product) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:        eventType,
		AggregateID: product.ID,
		Actor:       actorFromIdentity(actor),
		Payload:     events.ProductPayload{Name: product.Name, Category: product.Category},
	})
}

func applyProductInput(product *domain.Product, input ProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
}

func validateProduct(product *domain.Product, hasPrice bool) error {
	missing := []string{}
	if product.Name == "" {
		missing = append(missing, "name")
	}
	if product.Category == "" {
		missing = append(missing, "category")
	}
	if !hasPrice {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("name, category and price are required", map[string]any{"missing": missing})
	}
	if product.Price < 0 || math.IsNaN(product.Price) || math.IsInf(product.Price, 0) {
		return apperrors.NewValidationError("price must be a non-negative number", nil)
	}
	return nil
}

func productLookupError(err error) error {
	if apperrors.IsNotFound(err) {
		return apperrors.NewNotFound("product", nil)
	}
	return fmt.Errorf("product store: %w", err)
}

func actorFromIdentity(identity *domain.Identity) events.Actor {
	if identity == nil {
		return events.Actor{}
	}
	return events.Actor{AccountID: identity.AccountID, Role: string(identity.Role)}
}
