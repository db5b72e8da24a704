package middleware

import (
	"context"
	"strings"

	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves a raw bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Identity is the resolved caller attached to authenticated requests:
// the user document and the exact token the request presented.
type Identity struct {
	User  *models.User
	Token string
}

const identityKey = "identity"

// IdentityFrom returns the identity attached by RequireAuth.
func IdentityFrom(c *fiber.Ctx) (*Identity, bool) {
	id, ok := c.Locals(identityKey).(*Identity)
	return id, ok
}

// RequireAuth short-circuits with 401 unless the request carries a
// bearer token that verifies and is still live for its user.
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please authenticate"})
		}
		token := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.Authenticate(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please authenticate"})
		}

		c.Locals(identityKey, &Identity{User: user, Token: token})
		return c.Next()
	}
}
