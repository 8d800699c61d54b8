package response

import (
	"github.com/gofiber/fiber/v2"
)

// Payload is the fixed API envelope. Application failures ride on HTTP 200;
// the browser client branches on the success flag, not the status code.
type Payload struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK sends a success envelope.
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Payload{Success: true, Message: message, Data: data})
}

// Fail sends a failure envelope, still with HTTP 200.
func Fail(c *fiber.Ctx, message string) error {
	return c.JSON(Payload{Success: false, Message: message})
}
