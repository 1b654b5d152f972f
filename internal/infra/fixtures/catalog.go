package fixtures

import (
	"context"

	"github.com/samber/lo"

	"learning-platform-service/internal/domain"
)

// Catalog is an immutable in-memory CatalogStore built from a snapshot.
// It is safe for concurrent readers.
type Catalog struct {
	snapshot *domain.Snapshot

	episodes map[string]*domain.ContentItem
	videos   map[string]*domain.ContentItem
	series   map[string]*domain.Series
	courses  map[string]*domain.Course
	users    map[string]*domain.User
}

// NewCatalog indexes the snapshot by id. On duplicate ids the first record wins.
func NewCatalog(snapshot *domain.Snapshot) *Catalog {
	return &Catalog{
		snapshot: snapshot,
		episodes: firstByID(snapshot.Episodes, func(c *domain.ContentItem) string { return c.ID }),
		videos:   firstByID(snapshot.Videos, func(c *domain.ContentItem) string { return c.ID }),
		series:   firstByID(snapshot.Series, func(s *domain.Series) string { return s.ID }),
		courses:  firstByID(snapshot.Courses, func(c *domain.Course) string { return c.ID }),
		users:    firstByID(snapshot.Users, func(u *domain.User) string { return u.ID }),
	}
}

// FindEpisode returns the episode with the given id.
func (c *Catalog) FindEpisode(_ context.Context, id string) (*domain.ContentItem, error) {
	return c.episodes[id], nil
}

// FindVideo returns the standalone video with the given id.
func (c *Catalog) FindVideo(_ context.Context, id string) (*domain.ContentItem, error) {
	return c.videos[id], nil
}

// FindSeries returns the series with the given id.
func (c *Catalog) FindSeries(_ context.Context, id string) (*domain.Series, error) {
	return c.series[id], nil
}

// FindCourse returns the course with the given id.
func (c *Catalog) FindCourse(_ context.Context, id string) (*domain.Course, error) {
	return c.courses[id], nil
}

// FindUser returns the user with the given id.
func (c *Catalog) FindUser(_ context.Context, id string) (*domain.User, error) {
	return c.users[id], nil
}

// EpisodesByIDs returns the member episodes in fixture order. A duplicated
// id yields only its first record, the one FindEpisode returns.
func (c *Catalog) EpisodesByIDs(_ context.Context, ids []string) ([]*domain.ContentItem, error) {
	wanted := lo.Keyify(ids)

	members := lo.Filter(c.snapshot.Episodes, func(ep *domain.ContentItem, _ int) bool {
		_, ok := wanted[ep.ID]
		return ok
	})

	return lo.UniqBy(members, func(ep *domain.ContentItem) string { return ep.ID }), nil
}

// ListCourses returns all courses in fixture order.
func (c *Catalog) ListCourses(_ context.Context) ([]*domain.Course, error) {
	return c.snapshot.Courses, nil
}

func firstByID[T any](items []T, id func(T) string) map[string]T {
	index := make(map[string]T, len(items))
	for _, item := range items {
		key := id(item)
		if _, exists := index[key]; !exists {
			index[key] = item
		}
	}
	return index
}
