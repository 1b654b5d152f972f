package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/transport/httpserver/dto"
	"learning-platform-service/internal/validator"
)

// CatalogHandler serves course listings, course pages and the home bundle.
type CatalogHandler struct {
	service   *service.CatalogService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService, v *validator.Validator, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Home handles GET /api/v1/home
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	home, err := h.service.Home(c.UserContext())
	if err != nil {
		return internalError(c, "failed to load home page")
	}

	return c.JSON(dto.FromHomePage(home))
}

// ListCourses handles GET /api/v1/courses
func (h *CatalogHandler) ListCourses(c *fiber.Ctx) error {
	var req dto.CourseListRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	courses, err := h.service.ListCourses(c.UserContext())
	if err != nil {
		return internalError(c, "failed to list courses")
	}

	courses = lo.Filter(courses, func(course *domain.Course, _ int) bool {
		return req.Matches(course)
	})
	if req.Limit > 0 && len(courses) > req.Limit {
		courses = courses[:req.Limit]
	}

	return c.JSON(dto.CourseListResponse{
		Courses: dto.FromDomainCourses(courses),
		Total:   len(courses),
	})
}

// BeginnerCourses handles GET /api/v1/courses/beginner
func (h *CatalogHandler) BeginnerCourses(c *fiber.Ctx) error {
	courses, err := h.service.BeginnerCourses(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return internalError(c, "failed to list courses")
	}

	return c.JSON(dto.CourseListResponse{
		Courses: dto.FromDomainCourses(courses),
		Total:   len(courses),
	})
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CatalogHandler) GetCourse(c *fiber.Ctx) error {
	var path dto.ContentPath
	if err := c.ParamsParser(&path); err != nil {
		return badRequest(c, "INVALID_PARAMS", "invalid path parameters")
	}
	if err := h.validator.Validate(&path); err != nil {
		return validationFailed(c, err)
	}

	detail, err := h.service.CourseDetail(c.UserContext(), path.ID)
	if err != nil {
		return internalError(c, "failed to load course")
	}
	if detail == nil {
		return notFound(c, "course not found")
	}

	return c.JSON(dto.FromCourseDetail(detail))
}
