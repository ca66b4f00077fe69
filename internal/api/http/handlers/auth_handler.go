package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// AuthHandler exposes signup and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.SignupResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Name:      result.Account.Name,
		Email:     result.Account.Email,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, h.auth.Login)
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, h.auth.AdminLogin)
}

type loginFunc func(ctx context.Context, email, password string) (*service.AuthResult, error)

func (h *AuthHandler) login(c *fiber.Ctx, fn loginFunc) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := fn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Name:      result.Account.Name,
		Email:     result.Account.Email,
		Role:      string(result.Account.Role),
	})
}
