package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/srijalk/portfolio-backend/internal/services"
)

const deviceCookieName = "portfolio_device"

func (handler *Handler) requestIdentity(c *fiber.Ctx, token string) services.RequestIdentity {
	return services.RequestIdentity{
		Token:          token,
		IP:             handler.clientIP(c),
		Agent:          strings.TrimSpace(c.Get(fiber.HeaderUserAgent)),
		AcceptLanguage: strings.TrimSpace(c.Get(fiber.HeaderAcceptLanguage)),
	}
}

// deviceToken prefers the token carried in the request body, then the
// identity cookie. Either may be absent.
func deviceToken(c *fiber.Ctx, bodyToken string) string {
	if token := strings.TrimSpace(bodyToken); token != "" {
		return token
	}
	return strings.TrimSpace(c.Cookies(deviceCookieName))
}

// clientIP takes the first hop of X-Forwarded-For when the deployment sits
// behind a trusted proxy, otherwise the transport address.
func (handler *Handler) clientIP(c *fiber.Ctx) string {
	if handler.trustProxy {
		if forwarded := strings.TrimSpace(c.Get(fiber.HeaderXForwardedFor)); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	return strings.TrimSpace(c.IP())
}
