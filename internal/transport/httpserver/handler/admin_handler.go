package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/transport/httpserver/dto"
)

// CatalogImportRunner runs an on-demand catalog import. ran is false when
// another import is in progress.
// Implementations: job.CatalogSyncScheduler
type CatalogImportRunner interface {
	RunManual(ctx context.Context) (service.SyncResult, bool)
}

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	importer CatalogImportRunner // nil when the catalog is served from fixtures
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler. importer may be nil.
func NewAdminHandler(importer CatalogImportRunner, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		importer: importer,
		logger:   logger,
	}
}

// SyncCatalog handles POST /api/v1/admin/catalog/sync
func (h *AdminHandler) SyncCatalog(c *fiber.Ctx) error {
	if h.importer == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "catalog import is disabled for the fixtures source",
			Code:  "IMPORT_DISABLED",
		})
	}

	result, ran := h.importer.RunManual(c.UserContext())
	resp := dto.FromSyncResult(result, ran)

	switch {
	case result.Error != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	case !ran:
		return c.Status(fiber.StatusConflict).JSON(resp)
	default:
		return c.JSON(resp)
	}
}
