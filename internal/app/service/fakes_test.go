package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/infra/fixtures"
)

var errBoom = errors.New("boom")

func testCatalog() *fixtures.Catalog {
	ep := func(id, title string, n *int, parent domain.Parent) *domain.ContentItem {
		item := domain.NewEpisode(id, title, n, parent)
		item.VideoSource = "youtube"
		item.SourceID = "yt-" + id
		item.CreatorID = "u1"
		item.Duration = 330
		item.UploadDate = time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
		return item
	}

	unplayable := domain.NewEpisode("draft", "Draft", nil, domain.NoParent())

	return fixtures.NewCatalog(&domain.Snapshot{
		Episodes: []*domain.ContentItem{
			ep("s3", "Three", domain.IntPtr(3), domain.SeriesParent("S1")),
			ep("s1", "One", domain.IntPtr(1), domain.SeriesParent("S1")),
			ep("s2", "Two", domain.IntPtr(2), domain.SeriesParent("S1")),
			ep("l1", "Lesson A", nil, domain.CourseParent("C1")),
			ep("l2", "Lesson B", nil, domain.CourseParent("C1")),
			unplayable,
		},
		Videos: []*domain.ContentItem{func() *domain.ContentItem {
			v := domain.NewStandalone("v1", "Keynote")
			v.VideoSource = "vimeo"
			v.SourceID = "vm-1"
			v.CreatorID = "ghost"
			return v
		}()},
		Series: []*domain.Series{{ID: "S1", Title: "Go Basics", EpisodeIDs: []string{"s1", "s2", "s3"}}},
		Courses: []*domain.Course{
			{
				ID: "C1", Title: "Web", DifficultyLevel: domain.DifficultyBeginner, InstructorID: "u1",
				Duration: 3600, ContentIDs: []string{"l1", "l2"},
				Modules: []domain.Module{{ID: "m2", Title: "Two", Order: 2}, {ID: "m1", Title: "One", Order: 1}},
			},
			{ID: "C2", Title: "Advanced", DifficultyLevel: domain.DifficultyAdvanced, ContentIDs: []string{}},
			{ID: "C3", Title: "SQL", DifficultyLevel: domain.DifficultyBeginner, InstructorID: "ghost", ContentIDs: []string{"x"}},
			{ID: "C4", Title: "CSS", DifficultyLevel: domain.DifficultyBeginner, ContentIDs: []string{}},
		},
		Users: []*domain.User{{ID: "u1", Name: "Ada", Role: "instructor"}},
	})
}

// failingStore fails every call.
type failingStore struct{}

func (failingStore) FindEpisode(context.Context, string) (*domain.ContentItem, error) {
	return nil, errBoom
}
func (failingStore) FindVideo(context.Context, string) (*domain.ContentItem, error) {
	return nil, errBoom
}
func (failingStore) FindSeries(context.Context, string) (*domain.Series, error) { return nil, errBoom }
func (failingStore) FindCourse(context.Context, string) (*domain.Course, error) { return nil, errBoom }
func (failingStore) FindUser(context.Context, string) (*domain.User, error)     { return nil, errBoom }
func (failingStore) EpisodesByIDs(context.Context, []string) ([]*domain.ContentItem, error) {
	return nil, errBoom
}
func (failingStore) ListCourses(context.Context) ([]*domain.Course, error) { return nil, errBoom }

// memCache is an in-memory domain.Cache.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	cleared int
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.data[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.cleared++
	return nil
}

// stubPayments records calls and returns err when set.
type stubPayments struct {
	err           error
	donations     []domain.DonationRequest
	subscriptions []domain.SubscriptionRequest
}

func (p *stubPayments) Donate(_ context.Context, req domain.DonationRequest) (*domain.PaymentResult, error) {
	p.donations = append(p.donations, req)
	if p.err != nil {
		return nil, p.err
	}
	return &domain.PaymentResult{TransactionID: "tx-d", Status: domain.PaymentSucceeded}, nil
}

func (p *stubPayments) Subscribe(_ context.Context, req domain.SubscriptionRequest) (*domain.PaymentResult, error) {
	p.subscriptions = append(p.subscriptions, req)
	if p.err != nil {
		return nil, p.err
	}
	return &domain.PaymentResult{TransactionID: "tx-s", Status: domain.PaymentSucceeded}, nil
}
