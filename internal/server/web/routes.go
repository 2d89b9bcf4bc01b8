package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewRouter builds the Fiber application serving the API.
func NewRouter(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(h.RequestID())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/session", h.SessionGuard(), h.Session)

	api.Get("/documents", h.SessionGuard(), h.Documents)
	api.Post("/chat", h.SessionGuard(), h.RateGuard(), h.Chat)

	admin := api.Group("/users", h.SessionGuard(), h.AdminGuard())
	admin.Post("/", h.AddUser)
	admin.Get("/", h.ListUsers)

	return app
}
