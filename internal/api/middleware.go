package api

import "github.com/gofiber/fiber/v2"

// SecurityHeaders mirrors the headers the portfolio frontend is deployed
// behind: strict transport, no sniffing, no framing.
func SecurityHeaders(c *fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-XSS-Protection", "1; mode=block")
	c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	c.Set("Content-Security-Policy", "default-src 'self'")
	return c.Next()
}
