package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

func TestCatalogService_ListCourses(t *testing.T) {
	svc := NewCatalogService(testCatalog(), zap.NewNop())

	courses, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 4)
	assert.Equal(t, "C1", courses[0].ID)
}

func TestCatalogService_BeginnerCourses(t *testing.T) {
	svc := NewCatalogService(testCatalog(), zap.NewNop())
	ctx := context.Background()

	all, err := svc.BeginnerCourses(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	two, err := svc.BeginnerCourses(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "C1", two[0].ID)
	assert.Equal(t, "C3", two[1].ID)
}

func TestCatalogService_CourseDetail(t *testing.T) {
	svc := NewCatalogService(testCatalog(), zap.NewNop())
	ctx := context.Background()

	detail, err := svc.CourseDetail(ctx, "C1")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Ada", detail.Instructor.Name)
	assert.Equal(t, domain.OutlineModules, detail.Outline.State)
	require.Len(t, detail.Outline.Entries, 2)
	assert.Equal(t, "m1", detail.Outline.Entries[0].ModuleID)
	assert.Equal(t, "l1", detail.Outline.Entries[0].LessonID)
	assert.Equal(t, 60, detail.EstimatedMinutes)
	assert.Equal(t, "l1", detail.FirstLessonID)

	dangling, err := svc.CourseDetail(ctx, "C3")
	require.NoError(t, err)
	assert.Nil(t, dangling.Instructor)
	assert.Equal(t, domain.OutlineLessonsOnly, dangling.Outline.State)

	empty, err := svc.CourseDetail(ctx, "C4")
	require.NoError(t, err)
	assert.Nil(t, empty.Instructor)
	assert.Equal(t, domain.OutlinePending, empty.Outline.State)
	assert.Empty(t, empty.FirstLessonID)

	missing, err := svc.CourseDetail(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCatalogService_Home(t *testing.T) {
	svc := NewCatalogService(testCatalog(), zap.NewNop())

	home, err := svc.Home(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(home.LearningPaths))
	for _, p := range home.LearningPaths {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"web-dev", "ai-basics", "data-sql"}, ids)
	assert.Len(t, home.PopularSkills, 5)
	require.Len(t, home.FeaturedCourses, FeaturedCourseCount)
	assert.Equal(t, "C1", home.FeaturedCourses[0].ID)
}

func TestCatalogService_StoreErrors(t *testing.T) {
	svc := NewCatalogService(failingStore{}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ListCourses(ctx)
	assert.ErrorIs(t, err, errBoom)

	_, err = svc.CourseDetail(ctx, "C1")
	assert.ErrorIs(t, err, errBoom)

	_, err = svc.Home(ctx)
	assert.ErrorIs(t, err, errBoom)
}
