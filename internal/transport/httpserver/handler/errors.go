// Package handler provides HTTP handlers for the API and the HTML pages.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/transport/httpserver/dto"
)

// actionStatus maps a failed user action to its HTTP status and error code.
func actionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return fiber.StatusUnauthorized, "NOT_AUTHENTICATED"
	case errors.Is(err, domain.ErrUnknownPlan):
		return fiber.StatusNotFound, "UNKNOWN_PLAN"
	case errors.Is(err, domain.ErrAlreadyOnPlan):
		return fiber.StatusConflict, "ALREADY_ON_PLAN"
	case errors.Is(err, domain.ErrInvalidAmount):
		return fiber.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, domain.ErrTransactionFailed):
		return fiber.StatusBadGateway, "TRANSACTION_FAILED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeActionError renders a service error. ActionError messages are shown as is;
// anything else is hidden behind a generic message.
func writeActionError(c *fiber.Ctx, err error, logger *zap.Logger) error {
	status, code := actionStatus(err)

	message := "internal server error"
	var actionErr *service.ActionError
	if errors.As(err, &actionErr) {
		message = actionErr.Message
	} else {
		logger.Error("unexpected action error", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "validation failed",
		Code:    "VALIDATION_ERROR",
		Details: err,
	})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: message,
		Code:  "INTERNAL_ERROR",
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: message,
		Code:  "NOT_FOUND",
	})
}
