package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/identity-service/internal/domain"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// RequireRole gates a route on an exact role match against the verified
// claims. There is no role hierarchy: an admin token does not pass a
// manager-gated route.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewMissingToken()
		}
		if claims.Role != required {
			return apperrors.NewForbidden("access denied")
		}
		return c.Next()
	}
}
