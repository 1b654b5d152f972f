package domain

import (
	"context"
	"time"
)

// CatalogStore is the read-only catalog capability consumed by the resolver and services.
// Lookups are by exact id; absence returns nil with a nil error.
// Implementations: internal/infra/fixtures (JSON fixtures), internal/infra/postgres.
type CatalogStore interface {
	// FindEpisode returns the episode with the given id.
	FindEpisode(ctx context.Context, id string) (*ContentItem, error)

	// FindVideo returns the standalone video with the given id.
	FindVideo(ctx context.Context, id string) (*ContentItem, error)

	// FindSeries returns the series with the given id.
	FindSeries(ctx context.Context, id string) (*Series, error)

	// FindCourse returns the course with the given id.
	FindCourse(ctx context.Context, id string) (*Course, error)

	// FindUser returns the user with the given id.
	FindUser(ctx context.Context, id string) (*User, error)

	// EpisodesByIDs returns every episode whose id is in ids, each once,
	// in catalog order (not in the order of ids).
	EpisodesByIDs(ctx context.Context, ids []string) ([]*ContentItem, error)

	// ListCourses returns all courses in catalog order.
	ListCourses(ctx context.Context) ([]*Course, error)
}

// Snapshot is a complete, immutable copy of the catalog used for imports.
type Snapshot struct {
	Episodes []*ContentItem
	Videos   []*ContentItem
	Series   []*Series
	Courses  []*Course
	Users    []*User
}

// CatalogImporter writes a catalog snapshot into a persistent store.
// Implementations: internal/infra/postgres/repository.go
type CatalogImporter interface {
	Import(ctx context.Context, snapshot *Snapshot) error
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}

// AuthProvider turns a bearer credential into an authentication state.
// Implementations: internal/infra/auth/jwt.go
type AuthProvider interface {
	Authenticate(ctx context.Context, token string) (AuthState, error)
}

// PaymentsProvider processes donations and subscription checkouts.
// Implementations: internal/infra/payments (simulated and gateway).
type PaymentsProvider interface {
	Donate(ctx context.Context, req DonationRequest) (*PaymentResult, error)
	Subscribe(ctx context.Context, req SubscriptionRequest) (*PaymentResult, error)
}
