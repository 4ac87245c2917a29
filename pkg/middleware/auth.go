package middleware

import (
	"finsight/pkg/identity"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Locals keys populated by SessionMiddleware.
const (
	SessionTokenKey = "sessionToken"
	ExternalIDKey   = "externalID"
)

// SessionMiddleware rejects requests without a valid identity-provider
// session. The raw token is kept in Locals so downstream handlers can
// run user provisioning against it.
func SessionMiddleware(verifier *identity.Verifier, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		session := verifier.CurrentSession(token)
		if session == nil {
			logger.Warn("Request without valid session", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		c.Locals(SessionTokenKey, token)
		c.Locals(ExternalIDKey, session.ExternalID)

		return c.Next()
	}
}
