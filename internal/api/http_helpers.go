package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// storeUnavailable reports a ledger failure as a retryable condition distinct
// from a cooldown denial. The caller must not treat it as either allow or deny.
func storeUnavailable(c *fiber.Ctx, err error) error {
	log.Printf("cooldown store unavailable: %v", err)
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "Service temporarily unavailable. Please try again.",
	})
}
