package api

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/srijalk/portfolio-backend/internal/services"
)

type statusPayload struct {
	DeviceID string `json:"device_id" form:"device_id"`
}

type contactPayload struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Message  string `json:"message" form:"message"`
	DeviceID string `json:"device_id" form:"device_id"`
}

// CheckStatus reports whether the sender behind this request may submit the
// contact form. Safe to poll at any frequency: it never writes to the ledger.
func (handler *Handler) CheckStatus(c *fiber.Ctx) error {
	payload := statusPayload{}
	if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
		// The token is optional, so a malformed body is not an error here.
		_ = c.BodyParser(&payload)
	}

	identity := handler.requestIdentity(c, deviceToken(c, payload.DeviceID))
	identityKey, err := handler.resolver.Resolve(identity)
	if err != nil {
		return storeUnavailable(c, err)
	}

	row, err := handler.ledger.Find(identityKey)
	if err != nil {
		return storeUnavailable(c, err)
	}

	decision := services.Evaluate(row, time.Now())
	handler.setDeviceCookie(c, identityKey)

	return c.JSON(fiber.Map{
		"allowed":     decision.Allowed,
		"remainingMs": decision.Remaining.Milliseconds(),
	})
}

// Submit validates a contact submission, evaluates the sender's cooldown and,
// when allowed, delivers the message and records the attempt.
func (handler *Handler) Submit(c *fiber.Ctx) error {
	payload := contactPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	input, err := services.NormalizeContactInput(payload.Name, payload.Email, payload.Message)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, contactErrorMessage(err))
	}

	identity := handler.requestIdentity(c, deviceToken(c, payload.DeviceID))
	identityKey, err := handler.resolver.Resolve(identity)
	if err != nil {
		return storeUnavailable(c, err)
	}

	row, err := handler.ledger.Find(identityKey)
	if err != nil {
		return storeUnavailable(c, err)
	}

	now := time.Now()
	decision := services.Evaluate(row, now)
	handler.setDeviceCookie(c, identityKey)

	if !decision.Allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":       "Please wait before sending another message",
			"remainingMs": decision.Remaining.Milliseconds(),
		})
	}

	if err := handler.mailer.SendContactMessage(input); err != nil {
		log.Printf("contact: send failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Error sending message. Please try again.")
	}

	if err := handler.ledger.RecordAttempt(identityKey, identity.IP, identity.Agent, now); err != nil {
		return storeUnavailable(c, err)
	}

	attemptCount := 1
	if row != nil {
		attemptCount = row.AttemptCount + 1
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"remainingMs": services.EffectiveWindow(attemptCount).Milliseconds(),
	})
}

func contactErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrContactFieldsMissing):
		return "Missing required fields"
	case errors.Is(err, services.ErrContactEmailInvalid):
		return "Invalid email address"
	case errors.Is(err, services.ErrContactMessageTooLong):
		return "Message too long"
	default:
		return "Invalid request format"
	}
}
