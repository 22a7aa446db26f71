package handlers

import (
	"errors"
	"fmt"

	"kiosk/internal/logger"
	"kiosk/internal/middleware"
	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps a service error onto a status code and the usual
// {"message", "error"} body. Unexpected errors are logged and hidden.
func respondError(c *fiber.Ctx, err error) error {
	status, message := classify(err)
	if status == fiber.StatusInternalServerError {
		logger.WithContext(c.UserContext()).Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func classify(err error) (int, string) {
	switch {
	// A missing wallet fails settlement; it is a bad request, not a 404.
	case errors.Is(err, services.ErrWalletNotFound):
		return fiber.StatusBadRequest, "Wallet not found"
	case errors.Is(err, services.ErrInsufficientFunds):
		return fiber.StatusBadRequest, "Insufficient funds"
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest, "Validation failed"
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "Resource not found"
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized, "Authentication failed"
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden, "Access denied"
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict, "Conflict"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

// authorizeUser lets admins act on any account and everyone else only on
// their own.
func authorizeUser(c *fiber.Ctx, userID string) error {
	if middleware.IsAdmin(c) || middleware.UserID(c) == userID {
		return nil
	}
	return fmt.Errorf("%w: not allowed to act for user %s", services.ErrForbidden, userID)
}
