package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

// SnapshotSource produces a full catalog snapshot.
// Implementations: internal/infra/fixtures.Loader
type SnapshotSource interface {
	Load() (*domain.Snapshot, error)
}

// SyncResult holds the outcome of one catalog import.
type SyncResult struct {
	Episodes int           `json:"episodes"`
	Videos   int           `json:"videos"`
	Series   int           `json:"series"`
	Courses  int           `json:"courses"`
	Users    int           `json:"users"`
	Duration time.Duration `json:"duration"`
	Error    error         `json:"-"`
}

// Total returns the number of imported records.
func (r SyncResult) Total() int {
	return r.Episodes + r.Videos + r.Series + r.Courses + r.Users
}

// CatalogSyncService imports the catalog snapshot into the database.
type CatalogSyncService struct {
	source   SnapshotSource
	importer domain.CatalogImporter
	cache    domain.Cache // nil when caching is disabled
	logger   *zap.Logger

	runMu sync.Mutex
	mu    sync.Mutex
	last  *SyncResult
}

// NewCatalogSyncService creates a new CatalogSyncService. cache may be nil.
func NewCatalogSyncService(source SnapshotSource, importer domain.CatalogImporter, cache domain.Cache, logger *zap.Logger) *CatalogSyncService {
	return &CatalogSyncService{
		source:   source,
		importer: importer,
		cache:    cache,
		logger:   logger,
	}
}

// Sync loads the snapshot, imports it and drops cached watch pages.
// Concurrent calls in one process are serialized.
func (s *CatalogSyncService) Sync(ctx context.Context) SyncResult {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	result := s.sync(ctx)
	result.Duration = time.Since(start)

	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()

	if result.Error != nil {
		s.logger.Error("catalog import failed",
			zap.Duration("duration", result.Duration),
			zap.Error(result.Error),
		)
		return result
	}

	s.logger.Info("catalog import completed",
		zap.Int("episodes", result.Episodes),
		zap.Int("videos", result.Videos),
		zap.Int("series", result.Series),
		zap.Int("courses", result.Courses),
		zap.Int("users", result.Users),
		zap.Duration("duration", result.Duration),
	)

	return result
}

func (s *CatalogSyncService) sync(ctx context.Context) SyncResult {
	snapshot, err := s.source.Load()
	if err != nil {
		return SyncResult{Error: fmt.Errorf("loading catalog snapshot: %w", err)}
	}

	if err := s.importer.Import(ctx, snapshot); err != nil {
		return SyncResult{Error: fmt.Errorf("importing catalog snapshot: %w", err)}
	}

	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			// Stale pages expire on their own TTL.
			s.logger.Warn("clearing cache after import failed", zap.Error(err))
		}
	}

	return SyncResult{
		Episodes: len(snapshot.Episodes),
		Videos:   len(snapshot.Videos),
		Series:   len(snapshot.Series),
		Courses:  len(snapshot.Courses),
		Users:    len(snapshot.Users),
	}
}

// LastResult returns the most recent import outcome, or nil before the first run.
func (s *CatalogSyncService) LastResult() *SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return nil
	}
	last := *s.last
	return &last
}
