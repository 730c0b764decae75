package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/KataCreate/report-sys/internal/auth"
)

const userIDKey = "authUserID"

// NewRequireAuth returns a middleware that verifies the Authorization bearer
// token against the identity provider and stores the resolved user ID in the
// request locals. Session issuance and refresh stay the provider's concern.
func NewRequireAuth(identity auth.Identity) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := identity.Verify(c.Context(), token)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		}

		c.Locals(userIDKey, user.ID)
		return c.Next()
	}
}

// AuthUserID returns the authenticated user ID stored by NewRequireAuth,
// or nil when the request was not authenticated.
func AuthUserID(c fiber.Ctx) *string {
	if v, ok := c.Locals(userIDKey).(string); ok && v != "" {
		return &v
	}
	return nil
}
