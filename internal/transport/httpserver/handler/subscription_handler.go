package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/transport/httpserver/dto"
	"learning-platform-service/internal/transport/httpserver/middleware"
	"learning-platform-service/internal/validator"
)

// SubscriptionHandler serves plan listing and plan selection.
type SubscriptionHandler struct {
	service   *service.SubscriptionService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(svc *service.SubscriptionService, v *validator.Validator, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Plans handles GET /api/v1/subscriptions/plans
func (h *SubscriptionHandler) Plans(c *fiber.Ctx) error {
	return c.JSON(h.service.Plans(middleware.AuthFrom(c)))
}

// Subscribe handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", "invalid request body")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.ChoosePlan(c.UserContext(), middleware.AuthFrom(c), domain.PlanID(req.PlanID))
	if err != nil {
		return writeActionError(c, err, h.logger)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.FromPayment(result.Message, result.Payment))
}
