package web

import "github.com/gofiber/fiber/v2"

// Response is the standard API envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// deniedMessage is the single message returned for every authentication,
// session, and authorization failure. The specific reason is logged, never
// revealed, so callers cannot enumerate accounts or probe lockout state.
const deniedMessage = "access denied"

func success(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Response{Success: true, Message: message, Data: data})
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Message: message, Data: data})
}

func fail(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{Success: false, Error: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusBadRequest, message)
}

func denied(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, deniedMessage)
}

func forbidden(c *fiber.Ctx) error {
	return fail(c, fiber.StatusForbidden, deniedMessage)
}

func tooManyRequests(c *fiber.Ctx) error {
	return fail(c, fiber.StatusTooManyRequests, "too many requests")
}

func conflict(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusConflict, message)
}

func internalError(c *fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "internal error")
}
