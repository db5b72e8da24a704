package handlers

import (
	"errors"
	"io"

	"github.com/fathima-sithara/account-service/internal/avatars"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadAvatar accepts a single file under the "avatar" field. The
// pre-acceptance filter runs on the multipart header before any bytes
// are read.
//
// The route is not behind the auth middleware and the stored object is
// not tied to a user record, matching current product behavior.
func (h *Handler) UploadAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if err := avatars.ValidateHeader(fileHeader); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.log.Error("failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read upload"})
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, avatars.MaxFileSize+1))
	if err != nil {
		h.log.Error("failed to read upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read upload"})
	}
	if int64(len(data)) > avatars.MaxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": avatars.ErrTooLarge.Error()})
	}

	if _, err := h.svc.UploadAvatar(c.Context(), data); err != nil {
		if errors.Is(err, avatars.ErrNotImage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("avatar upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store avatar"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "successfully uploaded"})
}
