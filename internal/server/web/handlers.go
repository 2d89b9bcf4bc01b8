// Package web exposes the auth core over HTTP: login/logout, session
// introspection, the rate-limited chat endpoint, and admin user management.
package web

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/avolkovs/raggate/internal/common"
	"github.com/avolkovs/raggate/internal/logging"
	"github.com/avolkovs/raggate/internal/server/creds"
	"github.com/avolkovs/raggate/internal/server/docs"
	"github.com/avolkovs/raggate/internal/server/ratelimit"
	"github.com/avolkovs/raggate/internal/server/sessions"
)

// Handler bundles the components the HTTP surface serves.
type Handler struct {
	creds     *creds.Store
	sessions  *sessions.Manager
	limiter   *ratelimit.Limiter
	docs      docs.Store
	responder docs.Responder
	logger    logging.Logger
}

func NewHandler(
	credStore *creds.Store,
	sessionManager *sessions.Manager,
	limiter *ratelimit.Limiter,
	docStore docs.Store,
	responder docs.Responder,
	logger logging.Logger,
) *Handler {
	return &Handler{
		creds:     credStore,
		sessions:  sessionManager,
		limiter:   limiter,
		docs:      docStore,
		responder: responder,
		logger:    logger.With("component", "web"),
	}
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AddUserRequest is the admin user-creation request body.
type AddUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ChatRequest is the chat request body.
type ChatRequest struct {
	Message string `json:"message"`
}

// Login authenticates a username/password pair and returns a session token
// plus the user's role. Wrong password, unknown user, and locked account
// all produce the identical denial.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username and password are required")
	}

	token, role, err := h.creds.Authenticate(c.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		var pe *common.PersistenceError
		if errors.As(err, &pe) {
			h.logger.Error(c.Context(), "login persistence failure", "error", err.Error())
			return internalError(c)
		}
		return denied(c)
	}

	return success(c, "logged in", fiber.Map{"token": token, "role": role})
}

// Logout deletes the presented session. Succeeds only for a live token.
func (h *Handler) Logout(c *fiber.Ctx) error {
	token := sessionToken(c)
	if token == "" {
		return denied(c)
	}

	if err := h.sessions.Logout(c.Context(), token); err != nil {
		if errors.Is(err, common.ErrSessionUnknown) {
			return denied(c)
		}
		h.logger.Error(c.Context(), "logout persistence failure", "error", err.Error())
		return internalError(c)
	}
	return success(c, "logged out", nil)
}

// Session reports the (username, role) snapshot of a valid session. Runs
// behind SessionGuard, which already slid the expiry forward.
func (h *Handler) Session(c *fiber.Ctx) error {
	return success(c, "", fiber.Map{
		"username": c.Locals(localUsername),
		"role":     c.Locals(localRole),
	})
}

// Documents lists the documents visible to the caller's role.
func (h *Handler) Documents(c *fiber.Ctx) error {
	role, _ := c.Locals(localRole).(string)

	titles, err := h.docs.ListDocuments(c.Context(), role)
	if err != nil {
		h.logger.Error(c.Context(), "document listing failed", "role", role, "error", err.Error())
		return internalError(c)
	}
	return success(c, "", fiber.Map{"documents": titles})
}

// Chat answers a chat message scoped to the caller's role. Runs behind
// SessionGuard and RateGuard.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "message is required")
	}

	role, _ := c.Locals(localRole).(string)
	answer, err := h.responder.Respond(c.Context(), role, req.Message)
	if err != nil {
		h.logger.Error(c.Context(), "chat responder failed", "role", role, "error", err.Error())
		return internalError(c)
	}
	return success(c, "", fiber.Map{"response": answer})
}

// AddUser creates an account. Admin only.
func (h *Handler) AddUser(c *fiber.Ctx) error {
	var req AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		return badRequest(c, "username, password and role are required")
	}

	err := h.creds.AddUser(c.Context(), strings.TrimSpace(req.Username), req.Password, req.Role)
	switch {
	case err == nil:
		return created(c, "user created", fiber.Map{"username": req.Username, "role": req.Role})
	case errors.Is(err, common.ErrDuplicateUser):
		return conflict(c, "user already exists")
	case errors.Is(err, common.ErrInvalidRole):
		return badRequest(c, "invalid role")
	default:
		h.logger.Error(c.Context(), "add user failed", "error", err.Error())
		return internalError(c)
	}
}

// ListUsers returns the username→role projection. Admin only.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	return success(c, "", fiber.Map{"users": h.creds.ListUsers(c.Context())})
}
