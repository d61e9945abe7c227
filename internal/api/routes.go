package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Get("/check-status", handler.StatusRateLimit, handler.CheckStatus)
	api.Post("/check-status", handler.StatusRateLimit, handler.CheckStatus)
	api.Post("/submit", handler.SubmitRateLimit, handler.Submit)
}
