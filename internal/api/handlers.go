package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/srijalk/portfolio-backend/internal/db"
	"github.com/srijalk/portfolio-backend/internal/services"
	"gorm.io/gorm"
)

const (
	statusRequestsPerMinute = 10
	submitRequestsPerMinute = 5
	limiterIdleTTL          = 15 * time.Minute
)

type Handler struct {
	repositories  *db.Repositories
	ledger        services.CooldownLedger
	resolver      *services.IdentityResolver
	mailer        Mailer
	cookieSecure  bool
	trustProxy    bool
	statusLimiter *limiterStore
	submitLimiter *limiterStore
}

type Config struct {
	CookieSecure bool
	TrustProxy   bool
	Mailer       Mailer
}

func NewHandler(database *gorm.DB, config Config) *Handler {
	repositories := db.NewRepositories(database)

	mailer := config.Mailer
	if mailer == nil {
		mailer = logMailer{}
	}

	return &Handler{
		repositories:  repositories,
		ledger:        repositories.Cooldowns,
		resolver:      services.NewIdentityResolver(repositories.Cooldowns),
		mailer:        mailer,
		cookieSecure:  config.CookieSecure,
		trustProxy:    config.TrustProxy,
		statusLimiter: newLimiterStore(statusRequestsPerMinute, limiterIdleTTL),
		submitLimiter: newLimiterStore(submitRequestsPerMinute, limiterIdleTTL),
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
