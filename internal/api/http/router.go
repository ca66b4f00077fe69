package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Products       *handlers.ProductsHandler
	Orders         *handlers.OrdersHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
	// EnforceAdminRole restricts token-protected routes to admin accounts.
	EnforceAdminRole bool
	// AuthRateLimit guards the credential endpoints; nil disables it.
	AuthRateLimit fiber.Handler
	// Metrics is served on /metrics when set.
	Metrics nethttp.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	limit := cfg.AuthRateLimit
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}
	requireAdmin := auth.RequireAdmin(cfg.EnforceAdminRole)
	protected := func(h fiber.Handler) []fiber.Handler {
		return []fiber.Handler{cfg.AuthMiddleware.Handle, requireAdmin, h}
	}

	api := app.Group("/api")
	api.Post("/signup", limit, cfg.Auth.Signup)
	api.Post("/login", limit, cfg.Auth.Login)
	api.Post("/admin/login", limit, cfg.Auth.AdminLogin)

	for _, category := range domain.Categories() {
		api.Get("/"+category.Slug(), cfg.Catalog.Category(category))
	}

	api.Get("/products", cfg.Catalog.List)
	api.Get("/products/:id", cfg.Products.Get)
	api.Post("/products", protected(cfg.Products.Create)...)
	api.Put("/products/:id", protected(cfg.Products.Update)...)
	api.Delete("/products/:id", protected(cfg.Products.Delete)...)

	api.Post("/orders", cfg.Orders.Place)
	api.Get("/orders", protected(cfg.Orders.List)...)
	api.Get("/orders/:id", protected(cfg.Orders.Get)...)
	api.Put("/orders/:id", protected(cfg.Orders.UpdateStatus)...)

	api.Get("/stats", protected(cfg.Stats.Get)...)
}
