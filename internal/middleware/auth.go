package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// AdminOnly requires the X-API-Key header (optionally "Bearer "-prefixed)
// to equal adminKey. An empty adminKey disables the check.
func AdminOnly(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			return c.Next()
		}

		apiKey := strings.TrimPrefix(c.Get("X-API-Key"), "Bearer ")
		if apiKey == "" {
			logger.Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Admin access attempt without API key")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "API key is required",
			})
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(adminKey)) != 1 {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Unauthorized admin access attempt")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}
