package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/repository/memrepo"
	"github.com/spec-kit/storefront-service/internal/seed"
	"github.com/spec-kit/storefront-service/internal/service"
)

type fakePinger struct {
	err     error
	enabled bool
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func (f fakePinger) Enabled() bool { return f.enabled }

type testServer struct {
	app        *fiber.App
	products   *memrepo.Products
	orders     *memrepo.Orders
	accounts   *memrepo.Accounts
	dispatcher events.Dispatcher
}

type serverOptions struct {
	enforceAdmin bool
	authRPS      float64
	authBurst    int
	postgresErr  error
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	authCfg := config.AuthConfig{
		JWTSecret:             "router-secret",
		AccessTokenTTLMinutes: 60,
		PasswordMode:          config.PasswordModePlain,
		EnforceAdminRole:      opts.enforceAdmin,
	}
	products := memrepo.NewProducts()
	orders := memrepo.NewOrders()
	accounts := memrepo.NewAccounts()

	seeder := seed.NewSeeder(config.SeedConfig{
		Enabled:       true,
		AdminEmail:    "admin@ecommercestore.com",
		AdminPassword: "admim",
		AdminName:     "Admin",
	}, seed.Dependencies{
		ProductRepo: products,
		AccountRepo: accounts,
		Credentials: auth.NewCredentialPolicy(authCfg),
	}, logger)
	require.NoError(t, seeder.Run(context.Background()))

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(authCfg, service.AuthDependencies{AccountRepo: accounts})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	RegisterMiddlewares(app, logger, metrics, 0)

	var authLimit fiber.Handler
	if opts.authRPS > 0 {
		authLimit = RateLimit(opts.authRPS, opts.authBurst)
	}
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler("storefront-service", "test", fakePinger{err: opts.postgresErr}, fakePinger{}),
		Auth:     handlers.NewAuthHandler(authService),
		Catalog:  handlers.NewCatalogHandler(service.NewCatalogService(service.CatalogDependencies{ProductRepo: products})),
		Products: handlers.NewProductsHandler(service.NewProductService(service.ProductDependencies{ProductRepo: products, Dispatcher: dispatcher})),
		Orders: handlers.NewOrdersHandler(service.NewOrderService(service.OrderDependencies{
			OrderRepo:  orders,
			Dispatcher: dispatcher,
			Metrics:    metrics,
		})),
		Stats:            handlers.NewStatsHandler(service.NewStatsService(service.StatsDependencies{ProductRepo: products, OrderRepo: orders})),
		AuthMiddleware:   auth.NewAuthMiddleware(authService.TokenManager()),
		EnforceAdminRole: opts.enforceAdmin,
		AuthRateLimit:    authLimit,
		Metrics:          metrics.Handler(),
	})

	return &testServer{app: app, products: products, orders: orders, accounts: accounts, dispatcher: dispatcher}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	status, body := s.do(t, fiber.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    "admin@ecommercestore.com",
		"password": "admim",
	})
	require.Equal(t, nethttp.StatusOK, status, string(body))
	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Equal(t, "admin", resp.Role)
	return resp.Token
}

func decodeError(t *testing.T, body []byte) (string, string) {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &resp), string(body))
	return resp.Message, resp.Code
}

func TestRoutes_SeededCatalog(t *testing.T) {
	srv := newTestServer(t, serverOptions{})

	for _, category := range domain.Categories() {
		t.Run(category.Slug(), func(t *testing.T) {
			status, body := srv.do(t, fiber.MethodGet, "/api/"+category.Slug(), "", nil)
			require.Equal(t, nethttp.StatusOK, status)

			var products []domain.Product
			require.NoError(t, json.Unmarshal(body, &products))
			assert.Len(t, products, 5)
			for _, product := range products {
				assert.Equal(t, category.String(), product.Category)
				assert.NotEmpty(t, product.ID)
			}
		})
	}

	status, body := srv.do(t, fiber.MethodGet, "/api/groceries", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(body), `"name":"Organic Bananas","category":"Groceries","price":0.79`)

	status, body = srv.do(t, fiber.MethodGet, "/api/products", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	var all []domain.Product
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 35)
}

func TestRoutes_EmptyCategoryReturnsEmptyArray(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	fashion, err := srv.products.ListByCategory(context.Background(), "Fashion")
	require.NoError(t, err)
	for _, product := range fashion {
		require.NoError(t, srv.products.Delete(context.Background(), product.ID))
	}

	status, body := srv.do(t, fiber.MethodGet, "/api/fashion", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestRoutes_SignupAndLogin(t *testing.T) {
	srv := newTestServer(t, serverOptions{})

	status, body := srv.do(t, fiber.MethodPost, "/api/signup", "", map[string]string{
		"name":     "Ann",
		"email":    "ann@example.com",
		"password": "pw",
	})
	require.Equal(t, nethttp.StatusCreated, status, string(body))
	var signup struct {
		Token string `json:"token"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(body, &signup))
	assert.Equal(t, "Ann", signup.Name)
	assert.Equal(t, "ann@example.com", signup.Email)

	tokens := auth.NewTokenManager("router-secret", 60)
	identity, err := tokens.ParseToken(signup.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, identity.Role)

	status, body = srv.do(t, fiber.MethodPost, "/api/signup", "", map[string]string{
		"email":    "ann@example.com",
		"password": "other",
	})
	assert.Equal(t, nethttp.StatusConflict, status)
	_, code := decodeError(t, body)
	assert.Equal(t, "CONFLICT", code)

	testCases := map[string]struct {
		path     string
		email    string
		password string
		status   int
		role     string
	}{
		"should log shopper in":              {path: "/api/login", email: "ann@example.com", password: "pw", status: nethttp.StatusOK, role: "user"},
		"should log admin in":                {path: "/api/login", email: "admin@ecommercestore.com", password: "admim", status: nethttp.StatusOK, role: "admin"},
		"should let shopper use admin login": {path: "/api/admin/login", email: "ann@example.com", password: "pw", status: nethttp.StatusOK, role: "user"},
		"should reject bad password":         {path: "/api/login", email: "ann@example.com", password: "nope", status: nethttp.StatusUnauthorized},
		"should reject unknown account":      {path: "/api/admin/login", email: "zed@example.com", password: "pw", status: nethttp.StatusUnauthorized},
		"should reject missing fields":       {path: "/api/login", email: "ann@example.com", status: nethttp.StatusBadRequest},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			status, body := srv.do(t, fiber.MethodPost, tc.path, "", map[string]string{
				"email":    tc.email,
				"password": tc.password,
			})
			require.Equal(t, tc.status, status, string(body))
			if tc.role == "" {
				message, _ := decodeError(t, body)
				assert.NotEmpty(t, message)
				return
			}
			var resp struct {
				Token string `json:"token"`
				Role  string `json:"role"`
			}
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, tc.role, resp.Role)
		})
	}
}

func TestRoutes_Checkout(t *testing.T) {
	srv := newTestServer(t, serverOptions{})

	status, body := srv.do(t, fiber.MethodPost, "/api/orders", "", map[string]any{
		"customerName": "Alice",
		"items":        []map[string]any{{"id": "p1", "name": "X", "price": 2, "quantity": 3}},
		"grandTotal":   6,
	})
	require.Equal(t, nethttp.StatusCreated, status, string(body))
	var placed struct {
		Message string `json:"message"`
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(body, &placed))
	assert.Equal(t, service.DefaultConfirmationMessage, placed.Message)
	require.NotEmpty(t, placed.OrderID)

	token := srv.adminToken(t)
	status, body = srv.do(t, fiber.MethodGet, "/api/orders/"+placed.OrderID, token, nil)
	require.Equal(t, nethttp.StatusOK, status, string(body))
	var order domain.Order
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "Alice", order.CustomerName)
	assert.Equal(t, "guest", order.UserID)
	assert.Equal(t, "Received", order.Status)
	assert.Equal(t, 6.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, domain.LineItem{ProductID: "p1", Name: "X", Price: 2, Quantity: 3}, order.Items[0])

	status, body = srv.do(t, fiber.MethodGet, "/api/orders", token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(body, &orders))
	assert.Len(t, orders, 1)
}

func TestRoutes_CheckoutValidation(t *testing.T) {
	testCases := map[string]map[string]any{
		"should reject empty items":   {"customerName": "Alice", "items": []any{}, "grandTotal": 6},
		"should reject null items":    {"customerName": "Alice", "items": nil, "grandTotal": 6},
		"should reject missing total": {"customerName": "Alice", "items": []map[string]any{{"id": "p1", "quantity": 1}}},
		"should reject missing name":  {"items": []map[string]any{{"id": "p1", "quantity": 1}}, "grandTotal": 1},
	}

	for name, payload := range testCases {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, serverOptions{})
			status, body := srv.do(t, fiber.MethodPost, "/api/orders", "", payload)
			require.Equal(t, nethttp.StatusBadRequest, status)
			message, code := decodeError(t, body)
			assert.Equal(t, "incomplete order data", message)
			assert.Equal(t, "VALIDATION_FAILED", code)

			list, err := srv.orders.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestRoutes_ProtectedRoutes(t *testing.T) {
	srv := newTestServer(t, serverOptions{})

	testCases := map[string]struct {
		method string
		path   string
		token  string
		status int
		code   string
	}{
		"should require token for orders":         {method: fiber.MethodGet, path: "/api/orders", status: nethttp.StatusUnauthorized, code: "UNAUTHORIZED"},
		"should require token for stats":          {method: fiber.MethodGet, path: "/api/stats", status: nethttp.StatusUnauthorized, code: "UNAUTHORIZED"},
		"should require token for product create": {method: fiber.MethodPost, path: "/api/products", status: nethttp.StatusUnauthorized, code: "UNAUTHORIZED"},
		"should forbid forged token":              {method: fiber.MethodGet, path: "/api/orders", token: "forged.token.value", status: nethttp.StatusForbidden, code: "FORBIDDEN"},
		"should report missing order":             {method: fiber.MethodPut, path: "/api/orders/missing", token: "admin", status: nethttp.StatusNotFound, code: "NOT_FOUND"},
		"should report missing product":           {method: fiber.MethodDelete, path: "/api/products/missing", token: "admin", status: nethttp.StatusNotFound, code: "NOT_FOUND"},
		"should report unknown route":             {method: fiber.MethodGet, path: "/api/unknown", status: nethttp.StatusNotFound, code: "NOT_FOUND"},
	}

	admin := srv.adminToken(t)
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			token := tc.token
			if token == "admin" {
				token = admin
			}
			var body any
			if tc.method == fiber.MethodPut {
				body = map[string]string{"status": "Shipped"}
			}
			status, raw := srv.do(t, tc.method, tc.path, token, body)
			require.Equal(t, tc.status, status, string(raw))
			_, code := decodeError(t, raw)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestRoutes_AnyTokenPassesAdminRoutesByDefault(t *testing.T) {
	testCases := map[string]struct {
		enforce bool
		status  int
	}{
		"should accept shopper token when not enforced": {enforce: false, status: nethttp.StatusOK},
		"should forbid shopper token when enforced":     {enforce: true, status: nethttp.StatusForbidden},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, serverOptions{enforceAdmin: tc.enforce})
			status, body := srv.do(t, fiber.MethodPost, "/api/signup", "", map[string]string{"email": "sam@example.com", "password": "pw"})
			require.Equal(t, nethttp.StatusCreated, status)
			var signup struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.Unmarshal(body, &signup))

			status, _ = srv.do(t, fiber.MethodGet, "/api/stats", signup.Token, nil)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestRoutes_ProductAdministration(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	token := srv.adminToken(t)

	status, body := srv.do(t, fiber.MethodPost, "/api/products", token, map[string]any{
		"name":     "Matcha",
		"category": "Groceries",
		"price":    12.5,
		"image":    "images/groceries/matcha.jpg",
	})
	require.Equal(t, nethttp.StatusCreated, status, string(body))
	var created domain.Product
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)

	status, body = srv.do(t, fiber.MethodPost, "/api/products", token, map[string]any{"name": "No Price", "category": "Snacks"})
	require.Equal(t, nethttp.StatusBadRequest, status, string(body))

	status, body = srv.do(t, fiber.MethodPut, "/api/products/"+created.ID, token, map[string]any{"price": 10})
	require.Equal(t, nethttp.StatusOK, status, string(body))
	var updated domain.Product
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Matcha", updated.Name)
	assert.Equal(t, 10.0, updated.Price)

	status, body = srv.do(t, fiber.MethodGet, "/api/products/"+created.ID, "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(body), `"price":10`)

	status, body = srv.do(t, fiber.MethodDelete, "/api/products/"+created.ID, token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, string(body))

	status, _ = srv.do(t, fiber.MethodGet, "/api/products/"+created.ID, "", nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestRoutes_ProductDeletedEventKeepsID(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	token := srv.adminToken(t)
	require.NoError(t, srv.products.Create(context.Background(), &domain.Product{
		ID: "aaaaaaaaaaaaaaaa", Name: "Wool Socks", Category: "Fashion", Price: 6.99,
	}))

	var captured []events.Event
	srv.dispatcher.Subscribe(events.EventProductDeleted, func(_ context.Context, event events.Event) error {
		captured = append(captured, event)
		return nil
	})

	status, _ := srv.do(t, fiber.MethodDelete, "/api/products/aaaaaaaaaaaaaaaa", token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	require.Len(t, captured, 1)

	// Later requests reuse the server's request buffers.
	for i := 0; i < 50; i++ {
		status, _ := srv.do(t, fiber.MethodDelete, "/api/products/zzzzzzzzzzzzzzzz", token, nil)
		require.Equal(t, nethttp.StatusNotFound, status)
	}

	assert.Equal(t, "aaaaaaaaaaaaaaaa", captured[0].AggregateID)
}

func TestRoutes_OrderStatusAndStats(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	token := srv.adminToken(t)

	status, body := srv.do(t, fiber.MethodGet, "/api/stats", token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.JSONEq(t, `{"productCount":35,"totalRevenue":0,"pendingOrders":0}`, string(body))

	var orderID string
	for _, total := range []float64{6, 4.5} {
		status, body = srv.do(t, fiber.MethodPost, "/api/orders", "", map[string]any{
			"customerName": "Bob",
			"items":        []map[string]any{{"id": "p1", "name": "X", "price": total, "quantity": 1}},
			"grandTotal":   total,
		})
		require.Equal(t, nethttp.StatusCreated, status)
		var placed struct {
			OrderID string `json:"orderId"`
		}
		require.NoError(t, json.Unmarshal(body, &placed))
		orderID = placed.OrderID
	}

	status, body = srv.do(t, fiber.MethodPut, "/api/orders/"+orderID, token, map[string]string{"status": ""})
	require.Equal(t, nethttp.StatusBadRequest, status, string(body))

	status, body = srv.do(t, fiber.MethodPut, "/api/orders/"+orderID, token, map[string]string{"status": "Shipped"})
	require.Equal(t, nethttp.StatusOK, status, string(body))
	var updated struct {
		Message string       `json:"message"`
		Order   domain.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Shipped", updated.Order.Status)
	assert.NotEmpty(t, updated.Message)

	status, body = srv.do(t, fiber.MethodGet, "/api/stats", token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.JSONEq(t, `{"productCount":35,"totalRevenue":10.5,"pendingOrders":1}`, string(body))
}

func TestRoutes_AuthRateLimit(t *testing.T) {
	srv := newTestServer(t, serverOptions{authRPS: 0.001, authBurst: 2})
	credentials := map[string]string{"email": "admin@ecommercestore.com", "password": "admim"}

	for i := 0; i < 2; i++ {
		status, _ := srv.do(t, fiber.MethodPost, "/api/login", "", credentials)
		require.Equal(t, nethttp.StatusOK, status)
	}
	status, body := srv.do(t, fiber.MethodPost, "/api/login", "", credentials)
	require.Equal(t, nethttp.StatusTooManyRequests, status)
	_, code := decodeError(t, body)
	assert.Equal(t, "RATE_LIMITED", code)

	status, _ = srv.do(t, fiber.MethodGet, "/api/groceries", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
}

func TestRoutes_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, serverOptions{})

	status, body := srv.do(t, fiber.MethodGet, "/health/ready", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(body), `"redis":"disabled"`)

	down := newTestServer(t, serverOptions{postgresErr: errors.New("connection refused")})
	status, _ = down.do(t, fiber.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, nethttp.StatusServiceUnavailable, status)

	srv.do(t, fiber.MethodGet, "/api/snacks", "", nil)
	status, body = srv.do(t, fiber.MethodGet, "/metrics", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.True(t, strings.Contains(string(body), "storefront_http_requests_total"))
}
