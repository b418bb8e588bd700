package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the standard error shape. The message is user-facing: the
// frontend surfaces it verbatim, so it must be a complete, polite sentence.
type ErrorBody struct {
	Error string `json:"error"`
}

// AuthErrorBody is the shape used by the auth middleware (401s).
type AuthErrorBody struct {
	Detail string `json:"detail"`
}

// JSON sends a 200 OK with the payload as-is.
func JSON(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created sends a 201 Created with the payload as-is.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// Error sends the standard {"error": message} body with the given status.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// Unauthorized sends 401 with the {"detail": message} body used for auth failures.
func Unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(AuthErrorBody{Detail: message})
}
