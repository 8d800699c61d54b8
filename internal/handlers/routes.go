package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the API surface. The submission route matches every
// method so the handler can answer non-POST requests with its own message
// instead of fiber's 405.
func SetupRoutes(app *fiber.App, payment *PaymentHandler) {
	app.Get("/health", HealthCheck)

	api := app.Group("/api/v1")
	api.All("/payments", payment.SubmitPayment)
}
