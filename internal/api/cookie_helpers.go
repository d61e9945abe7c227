package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/srijalk/portfolio-backend/internal/services"
)

// setDeviceCookie pins the resolved identity to the browser for the length of
// the cooldown window, so later requests correlate even if the client loses
// its other storage.
func (handler *Handler) setDeviceCookie(c *fiber.Ctx, identityKey string) {
	c.Cookie(&fiber.Cookie{
		Name:     deviceCookieName,
		Value:    identityKey,
		Path:     "/",
		MaxAge:   int(services.CooldownWindow / time.Second),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
	})
}
