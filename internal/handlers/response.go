package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every product endpoint replies with. Error holds a
// string, or a []string when the store rejects several fields at once.
type Response struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

const (
	msgServerError     = "Server Error"
	msgProductNotFound = "Product not found"
	msgInvalidBody     = "Invalid request body"
)

func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

func respondList(c *fiber.Ctx, data interface{}, count int) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Count: &count, Data: data})
}

func respondError(c *fiber.Ctx, status int, message interface{}) error {
	return c.Status(status).JSON(Response{Success: false, Error: message})
}

// ErrorHandler renders errors that escape the handlers (unmatched routes,
// recovered panics, body limit violations) in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := msgServerError
	var e *fiber.Error
	if errors.As(err, &e) && e.Code < fiber.StatusInternalServerError {
		status = e.Code
		message = e.Message
	}
	if status == fiber.StatusInternalServerError {
		logError(c, "unhandled error", err)
	}
	return respondError(c, status, message)
}
