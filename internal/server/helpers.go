package server

import (
	"errors"

	"artfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError translates an AppError code into the HTTP status to respond with.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "EXTERNAL_SERVICE":
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// currentUserID reads the authenticated user ID set by the auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
