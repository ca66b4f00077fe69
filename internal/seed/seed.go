// Package seed fills an empty store with the starter catalog and the default
// administrator. Seeding is idempotent within one process but not atomic
// across instances started at the same time.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// Seeder inserts starter data without overwriting existing records.
type Seeder struct {
	products    repository.ProductRepository
	accounts    repository.AccountRepository
	credentials auth.CredentialPolicy
	cfg         config.SeedConfig
	logger      *zap.Logger
}

// Dependencies bundles what the seeder writes to.
type Dependencies struct {
	ProductRepo repository.ProductRepository
	AccountRepo repository.AccountRepository
	Credentials auth.CredentialPolicy
}

// NewSeeder constructs a seeder.
func NewSeeder(cfg config.SeedConfig, deps Dependencies, logger *zap.Logger) *Seeder {
	return &Seeder{
		products:    deps.ProductRepo,
		accounts:    deps.AccountRepo,
		credentials: deps.Credentials,
		cfg:         cfg,
		logger:      logger,
	}
}

// Run seeds the catalog when it is empty and the admin account when absent.
func (s *Seeder) Run(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("seeding disabled")
		return nil
	}
	if err := s.seedCatalog(ctx); err != nil {
		return err
	}
	return s.seedAdmin(ctx)
}

func (s *Seeder) seedCatalog(ctx context.Context) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		s.logger.Debug("catalog already populated", zap.Int64("products", count))
		return nil
	}

	samples := SampleProducts()
	for i := range samples {
		if err := s.products.Create(ctx, &samples[i]); err != nil {
			return fmt.Errorf("seed product %q: %w", samples[i].Name, err)
		}
	}
	s.logger.Info("seeded catalog", zap.Int("products", len(samples)))
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	_, err := s.accounts.GetByEmail(ctx, s.cfg.AdminEmail)
	if err == nil {
		s.logger.Debug("admin account already present", zap.String("email", s.cfg.AdminEmail))
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	password, err := s.credentials.Prepare(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("prepare admin credential: %w", err)
	}
	admin := &domain.Account{
		Name:     s.cfg.AdminName,
		Email:    s.cfg.AdminEmail,
		Password: password,
		Role:     domain.RoleAdmin,
	}
	if err := s.accounts.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}
	s.logger.Info("seeded admin account", zap.String("email", admin.Email))
	return nil
}
