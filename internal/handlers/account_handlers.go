package handlers

import (
	"errors"

	"github.com/fathima-sithara/account-service/internal/middleware"
	"github.com/fathima-sithara/account-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	svc services.AccountService
	log *zap.Logger
}

func NewHandler(svc services.AccountService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and opens its first session.
func (h *Handler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	sess, err := h.svc.Register(c.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("register failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create user"})
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

// Login opens a new session alongside any existing ones. Every
// failure gets the same generic message.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidCredentials.Error()})
	}
	sess, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.log.Error("login failed", zap.Error(err))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidCredentials.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(sess)
}

// Logout closes exactly the session used for this request.
func (h *Handler) Logout(c *fiber.Ctx) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please authenticate"})
	}
	if err := h.svc.Logout(c.Context(), id.User, id.Token); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to log out"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "successfully logged out"})
}

// LogoutAll closes every session, including the current one.
func (h *Handler) LogoutAll(c *fiber.Ctx) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please authenticate"})
	}
	if err := h.svc.LogoutAll(c.Context(), id.User); err != nil {
		h.log.Error("logout all failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to log out"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out from all sessions"})
}

// Me returns the caller's profile projection.
func (h *Handler) Me(c *fiber.Ctx) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please authenticate"})
	}
	return c.Status(fiber.StatusOK).JSON(id.User.Profile())
}

// Update applies a whitelisted partial update to the caller.
func (h *Handler) Update(c *fiber.Ctx) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please authenticate"})
	}
	user, err := h.svc.UpdateProfile(c.Context(), id.User, c.Body())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUpdate),
			errors.Is(err, services.ErrValidation),
			errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			h.log.Error("update profile failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update profile"})
		}
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// Delete removes the caller's account and returns its last state.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please authenticate"})
	}
	user, err := h.svc.DeleteAccount(c.Context(), id.User)
	if err != nil {
		h.log.Error("delete account failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete user"})
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
