// Package memrepo provides in-memory repository implementations with the
// same not-found and conflict semantics as the Postgres ones. Tests use it to
// exercise services and handlers without a database.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// Products is an in-memory repository.ProductRepository.
type Products struct {
	mu    sync.Mutex
	items []domain.Product
	// Err, when set, is returned from every call.
	Err error
}

var _ repository.ProductRepository = (*Products)(nil)

// NewProducts returns a repository pre-filled with the given products.
func NewProducts(seed ...domain.Product) *Products {
	p := &Products{}
	for i := range seed {
		_ = p.Create(context.Background(), &seed[i])
	}
	return p
}

func (p *Products) Create(_ context.Context, product *domain.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt, product.UpdatedAt = now, now
	p.items = append(p.items, *product)
	return nil
}

func (p *Products) Update(_ context.Context, product *domain.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	for i := range p.items {
		if p.items[i].ID == product.ID {
			product.CreatedAt = p.items[i].CreatedAt
			product.UpdatedAt = time.Now().UTC()
			p.items[i] = *product
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (p *Products) Delete(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	for i := range p.items {
		if p.items[i].ID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (p *Products) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	for i := range p.items {
		if p.items[i].ID == id {
			product := p.items[i]
			return &product, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (p *Products) List(_ context.Context) ([]domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]domain.Product{}, p.items...), nil
}

func (p *Products) ListByCategory(_ context.Context, category string) ([]domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	result := []domain.Product{}
	for _, product := range p.items {
		if product.Category == category {
			result = append(result, product)
		}
	}
	return result, nil
}

func (p *Products) Count(_ context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return 0, p.Err
	}
	return int64(len(p.items)), nil
}

// Accounts is an in-memory repository.AccountRepository.
type Accounts struct {
	mu    sync.Mutex
	items map[string]domain.Account
	Err   error
}

var _ repository.AccountRepository = (*Accounts)(nil)

// NewAccounts returns an empty account repository.
func NewAccounts() *Accounts {
	return &Accounts{items: map[string]domain.Account{}}
}

func (a *Accounts) Create(_ context.Context, account *domain.Account) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	for _, existing := range a.items {
		if existing.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.CreatedAt = time.Now().UTC()
	a.items[account.ID] = *account
	return nil
}

func (a *Accounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	for _, account := range a.items {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Orders is an in-memory repository.OrderRepository.
type Orders struct {
	mu    sync.Mutex
	items []domain.Order
	Err   error
}

var _ repository.OrderRepository = (*Orders)(nil)

// NewOrders returns a repository pre-filled with the given orders.
func NewOrders(seed ...domain.Order) *Orders {
	o := &Orders{}
	for i := range seed {
		_ = o.Create(context.Background(), &seed[i])
	}
	return o
}

func (o *Orders) Create(_ context.Context, order *domain.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}
	if order.Items == nil {
		order.Items = []domain.LineItem{}
	}
	stored := *order
	stored.Items = append([]domain.LineItem{}, order.Items...)
	o.items = append(o.items, stored)
	return nil
}

func (o *Orders) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return nil, o.Err
	}
	for i := range o.items {
		if o.items[i].ID == id {
			order := o.items[i]
			return &order, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (o *Orders) List(_ context.Context) ([]domain.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return nil, o.Err
	}
	result := append([]domain.Order{}, o.items...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OrderDate.After(result[j].OrderDate)
	})
	return result, nil
}

func (o *Orders) UpdateStatus(_ context.Context, id, status string) (*domain.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return nil, o.Err
	}
	for i := range o.items {
		if o.items[i].ID == id {
			o.items[i].Status = status
			order := o.items[i]
			return &order, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (o *Orders) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return decimal.Zero, o.Err
	}
	total := decimal.Zero
	for _, order := range o.items {
		total = total.Add(decimal.NewFromFloat(order.TotalAmount))
	}
	return total, nil
}

func (o *Orders) CountByStatus(_ context.Context, statuses []string) (int64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return 0, o.Err
	}
	var count int64
	for _, order := range o.items {
		for _, status := range statuses {
			if strings.Compare(order.Status, status) == 0 {
				count++
				break
			}
		}
	}
	return count, nil
}
