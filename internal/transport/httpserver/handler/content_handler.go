package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/transport/httpserver/dto"
	"learning-platform-service/internal/validator"
)

// ContentHandler serves the watch page bundle.
type ContentHandler struct {
	service   *service.ContentService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(svc *service.ContentService, v *validator.Validator, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Watch handles GET /api/v1/contents/:id
func (h *ContentHandler) Watch(c *fiber.Ctx) error {
	var path dto.ContentPath
	if err := c.ParamsParser(&path); err != nil {
		return badRequest(c, "INVALID_PARAMS", "invalid path parameters")
	}
	if err := h.validator.Validate(&path); err != nil {
		return validationFailed(c, err)
	}

	page, err := h.service.Watch(c.UserContext(), path.ID)
	if err != nil {
		return internalError(c, "failed to load content")
	}
	if page == nil {
		return notFound(c, "content not found")
	}

	return c.JSON(dto.FromWatchPage(page))
}
