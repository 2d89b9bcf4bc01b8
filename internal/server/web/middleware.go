package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/avolkovs/raggate/internal/common"
)

// Locals keys set by the middleware below.
const (
	localUsername  = "username"
	localRole      = "role"
	localRequestID = "request_id"
)

// RequestID tags every request with a fresh UUID, exposed both as a local
// and as a response header, so log lines from one request can be tied
// together.
func (h *Handler) RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(localRequestID, id)
		c.Set("X-Request-Id", id)
		return c.Next()
	}
}

// sessionToken pulls the bearer credential from the request: either the
// X-Session-Token header or an Authorization: Bearer header.
func sessionToken(c *fiber.Ctx) string {
	if token := c.Get(common.SessionTokenHeaderName); token != "" {
		return token
	}
	authz := c.Get(fiber.HeaderAuthorization)
	if after, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return after
	}
	return ""
}

// SessionGuard validates the session token and stores the (username, role)
// snapshot in locals. Every failure, missing token, unknown token, or
// expired session, degrades to the same generic denial.
func (h *Handler) SessionGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return denied(c)
		}

		username, role, err := h.sessions.Validate(c.Context(), token)
		if err != nil {
			h.logger.Warn(c.Context(), "session rejected",
				"reason", err.Error(), "request_id", c.Locals(localRequestID))
			return denied(c)
		}

		c.Locals(localUsername, username)
		c.Locals(localRole, role)
		return c.Next()
	}
}

// AdminGuard allows only sessions carrying the admin role. Must run after
// SessionGuard.
func (h *Handler) AdminGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(localRole).(string); role != "admin" {
			h.logger.Warn(c.Context(), "admin endpoint rejected",
				"username", c.Locals(localUsername), "request_id", c.Locals(localRequestID))
			return forbidden(c)
		}
		return c.Next()
	}
}

// RateGuard applies the per-username sliding-window limiter. Must run after
// SessionGuard.
func (h *Handler) RateGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, _ := c.Locals(localUsername).(string)
		if !h.limiter.Allow(c.Context(), username) {
			return tooManyRequests(c)
		}
		return c.Next()
	}
}
