package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/uzak0209/echo/internal/errs"
)

// RequireAccess validates the bearer access token and stores the subject
// in locals under "user_id".
func RequireAccess(tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		subject, err := tokens.Verify(token, TokenAccess)
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}

		c.Locals("user_id", subject)
		return c.Next()
	}
}

// UserID reads the authenticated subject set by RequireAccess.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
