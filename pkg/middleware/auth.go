package middleware

import (
	"crypto/subtle"
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// APIAuth guards the API with a static bearer token. When no token is
// configured, only loopback clients are allowed, so the default local
// setup works without credentials but is never exposed to the LAN.
func APIAuth(apiToken string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiToken != "" {
			header := c.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if !strings.HasPrefix(header, "Bearer ") ||
				subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) != 1 {
				logger.Warn("rejected request with invalid API token", zap.String("ip", c.IP()))
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid or missing API token",
				})
			}
			return c.Next()
		}

		if !isLoopback(c.IP()) {
			logger.Warn("rejected remote request without configured API token", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Remote access requires a configured API token",
			})
		}
		return c.Next()
	}
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
