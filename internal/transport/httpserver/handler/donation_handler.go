package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/transport/httpserver/dto"
	"learning-platform-service/internal/validator"
)

// DonationHandler serves the donation form options and donations.
type DonationHandler struct {
	service   *service.DonationService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(svc *service.DonationService, v *validator.Validator, logger *zap.Logger) *DonationHandler {
	return &DonationHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Presets handles GET /api/v1/donations/presets
func (h *DonationHandler) Presets(c *fiber.Ctx) error {
	return c.JSON(h.service.Options())
}

// Donate handles POST /api/v1/donations
func (h *DonationHandler) Donate(c *fiber.Ctx) error {
	var req dto.DonationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", "invalid request body")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.Donate(c.UserContext(), req.ToSelection())
	if err != nil {
		return writeActionError(c, err, h.logger)
	}

	return c.JSON(dto.FromPayment(result.Message, result.Payment))
}
