package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// AuthResult is a freshly issued session.
type AuthResult struct {
	Account   *domain.Account
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	accounts         repository.AccountRepository
	credentials      auth.CredentialPolicy
	tokenMgr         *auth.TokenManager
	enforceAdminRole bool
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	// Credentials defaults to the policy selected by the auth config.
	Credentials auth.CredentialPolicy
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	credentials := deps.Credentials
	if credentials == nil {
		credentials = auth.NewCredentialPolicy(cfg)
	}
	return &AuthService{
		accounts:         deps.AccountRepo,
		credentials:      credentials,
		tokenMgr:         auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		enforceAdminRole: cfg.EnforceAdminRole,
	}
}

// Signup creates a shopper account and signs it in.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	stored, err := s.credentials.Prepare(password)
	if err != nil {
		return nil, fmt.Errorf("prepare credential: %w", err)
	}

	account := &domain.Account{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: stored,
		Role:     domain.RoleUser,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return s.issue(account)
}

// Login authenticates any account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(account)
}

// AdminLogin performs the same credential check as Login. Unless admin role
// enforcement is configured, non-admin accounts are not rejected and the
// session carries the account's real role.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if s.enforceAdminRole && account.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	return s.issue(account)
}

// VerifyToken resolves a bearer token into the identity it was issued for.
func (s *AuthService) VerifyToken(token string) (*domain.Identity, error) {
	identity, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewForbidden("invalid or expired token")
	}
	return identity, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// EnforcesAdminRole reports whether admin routes require the admin role.
func (s *AuthService) EnforcesAdminRole() bool {
	return s.enforceAdminRole
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInvalidCredentials()
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if err := s.credentials.Compare(account.Password, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	return account, nil
}

func (s *AuthService) issue(account *domain.Account) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(account)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Account: account, Token: token, ExpiresAt: exp}, nil
}
