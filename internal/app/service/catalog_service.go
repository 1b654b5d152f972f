package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

// FeaturedCourseCount is the number of beginner courses shown on the home page.
const FeaturedCourseCount = 2

// CatalogService serves course listings and course pages.
type CatalogService struct {
	store  domain.CatalogStore
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store domain.CatalogStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// ListCourses returns all courses in catalog order.
func (s *CatalogService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		s.logger.Error("listing courses failed", zap.Error(err))
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	return courses, nil
}

// BeginnerCourses returns up to limit beginner courses; limit 0 returns all of them.
func (s *CatalogService) BeginnerCourses(ctx context.Context, limit int) ([]*domain.Course, error) {
	courses, err := s.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	return domain.BeginnerCourses(courses, limit), nil
}

// CourseDetail returns the course page projection, or nil for an unknown course.
// A missing instructor is not an error.
func (s *CatalogService) CourseDetail(ctx context.Context, courseID string) (*domain.CourseDetail, error) {
	course, err := s.store.FindCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("finding course failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, fmt.Errorf("finding course %s: %w", courseID, err)
	}
	if course == nil {
		s.logger.Debug("course not found", zap.String("course_id", courseID))
		return nil, nil
	}

	var instructor *domain.User
	if course.InstructorID != "" {
		instructor, err = s.store.FindUser(ctx, course.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("finding instructor %s: %w", course.InstructorID, err)
		}
	}

	return domain.NewCourseDetail(course, instructor), nil
}

// Home returns the home page content.
func (s *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	featured, err := s.BeginnerCourses(ctx, FeaturedCourseCount)
	if err != nil {
		return nil, err
	}

	return &HomePage{
		LearningPaths:   LearningPaths(),
		PopularSkills:   PopularSkills(),
		FeaturedCourses: featured,
	}, nil
}
