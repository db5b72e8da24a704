package routes

import (
	"github.com/fathima-sithara/account-service/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

// Setup registers the account routes. loginLimiter is optional and
// only guards the credential endpoint.
func Setup(app *fiber.App, h *handlers.Handler, requireAuth fiber.Handler, loginLimiter fiber.Handler) {
	app.Post("/users", h.Register)
	if loginLimiter != nil {
		app.Post("/users/login", loginLimiter, h.Login)
	} else {
		app.Post("/users/login", h.Login)
	}
	app.Post("/users/logout", requireAuth, h.Logout)
	app.Post("/users/logoutAll", requireAuth, h.LogoutAll)
	app.Get("/users/me", requireAuth, h.Me)
	app.Patch("/users/me", requireAuth, h.Update)
	app.Delete("/users/me", requireAuth, h.Delete)
	app.Post("/users/me/avatar", h.UploadAvatar)
}
