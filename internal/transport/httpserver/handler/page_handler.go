package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
)

const baseLayout = "layouts/base"

// PageHandler renders the server-side HTML pages.
type PageHandler struct {
	content *service.ContentService
	catalog *service.CatalogService
	logger  *zap.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(content *service.ContentService, catalog *service.CatalogService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		content: content,
		catalog: catalog,
		logger:  logger,
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	home, err := h.catalog.Home(c.UserContext())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("pages/home", fiber.Map{
		"Title": "Learn to code",
		"Home":  home,
	}, baseLayout)
}

// Courses handles GET /courses and GET /browse
func (h *PageHandler) Courses(c *fiber.Ctx) error {
	courses, err := h.catalog.ListCourses(c.UserContext())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("pages/courses", fiber.Map{
		"Title":   "Courses",
		"Courses": courses,
		"Skill":   c.Query("skill"),
	}, baseLayout)
}

// Course handles GET /courses/:courseId
func (h *PageHandler) Course(c *fiber.Ctx) error {
	detail, err := h.catalog.CourseDetail(c.UserContext(), c.Params("courseId"))
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if detail == nil {
		return h.NotFound(c)
	}

	return c.Render("pages/course", fiber.Map{
		"Title":  detail.Course.Title,
		"Detail": detail,
	}, baseLayout)
}

// Watch handles GET /watch/:contentId
func (h *PageHandler) Watch(c *fiber.Ctx) error {
	page, err := h.content.Watch(c.UserContext(), c.Params("contentId"))
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if page == nil {
		return h.NotFound(c)
	}

	return c.Render("pages/watch", fiber.Map{
		"Title": page.Content.Title,
		"Page":  page,
	}, baseLayout)
}

// NotFound renders the 404 page.
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	h.logger.Debug("page not found", zap.String("path", c.Path()))

	return c.Status(fiber.StatusNotFound).Render("pages/not_found", fiber.Map{
		"Title": "Not found",
	}, baseLayout)
}
