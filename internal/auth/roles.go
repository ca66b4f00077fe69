package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// RequireAdmin guards operator routes. With enforce false any verified
// identity passes, which is the storefront's current behavior.
func RequireAdmin(enforce bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("no token provided")
		}
		if enforce && !identity.IsAdmin() {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
