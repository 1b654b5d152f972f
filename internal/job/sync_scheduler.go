// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/pkg/locker"
)

// Lock keys shared by every instance.
const (
	// ImportLockKey is held for one interval after a scheduled import.
	ImportLockKey = "catalog:import:lock"
	// ImportRunningKey is held while any import, scheduled or manual, runs.
	ImportRunningKey = "catalog:import:running"
)

// CatalogSyncer runs one catalog import.
// Implementations: service.CatalogSyncService
type CatalogSyncer interface {
	Sync(ctx context.Context) service.SyncResult
}

// SyncConfig holds sync scheduler configuration.
type SyncConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// CatalogSyncScheduler re-imports the catalog periodically. A lock makes sure
// only one instance imports per interval.
type CatalogSyncScheduler struct {
	syncer CatalogSyncer
	cfg    SyncConfig
	logger *zap.Logger
	locker locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCatalogSyncScheduler creates a new CatalogSyncScheduler.
func NewCatalogSyncScheduler(
	syncer CatalogSyncer,
	cfg SyncConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *CatalogSyncScheduler {
	return &CatalogSyncScheduler{
		syncer: syncer,
		cfg:    cfg,
		logger: logger,
		locker: locker,
	}
}

// Start begins the background import loop.
func (s *CatalogSyncScheduler) Start() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting catalog sync scheduler",
		zap.Duration("interval", s.cfg.Interval),
		zap.Bool("run_on_startup", s.cfg.OnStartup),
	)

	s.wg.Add(1)
	go s.run()
}

// Stop cancels a running import and waits for the loop to exit.
func (s *CatalogSyncScheduler) Stop() {
	if s.cancel == nil {
		return
	}

	s.logger.Info("stopping catalog sync scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("catalog sync scheduler stopped")
}

func (s *CatalogSyncScheduler) run() {
	defer s.wg.Done()

	if s.cfg.OnStartup {
		s.RunOnce(s.ctx)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(s.ctx)
		}
	}
}

// RunOnce imports the catalog if no other instance imported it within the
// last interval. It reports whether an import ran.
//
// The cooldown lock TTL is the interval: a successful import keeps it, a
// skipped or failed one releases it so the next tick can retry.
func (s *CatalogSyncScheduler) RunOnce(ctx context.Context) (service.SyncResult, bool) {
	acquired, err := s.locker.Acquire(ctx, ImportLockKey, s.cfg.Interval)
	if err != nil {
		s.logger.Error("failed to acquire import lock", zap.Error(err))
		return service.SyncResult{Error: err}, false
	}
	if !acquired {
		s.logger.Debug("another instance imported the catalog recently, skipping")
		return service.SyncResult{}, false
	}

	result, ran := s.runExclusive(ctx)
	if !ran || result.Error != nil {
		// ctx may already be cancelled here.
		if err := s.locker.Release(context.WithoutCancel(ctx), ImportLockKey); err != nil {
			s.logger.Error("failed to release import lock", zap.Error(err))
		}
		return result, ran
	}

	s.logger.Info("catalog import done, lock held for cooldown",
		zap.Int("records", result.Total()),
		zap.Duration("cooldown", s.cfg.Interval),
	)

	return result, true
}

// RunManual imports the catalog now, ignoring the cooldown. It only skips
// when an import is already running on some instance.
func (s *CatalogSyncScheduler) RunManual(ctx context.Context) (service.SyncResult, bool) {
	s.logger.Info("manual catalog import requested")
	return s.runExclusive(ctx)
}

// runExclusive runs one import while holding ImportRunningKey.
func (s *CatalogSyncScheduler) runExclusive(ctx context.Context) (service.SyncResult, bool) {
	ttl := s.cfg.Timeout
	if ttl <= 0 {
		ttl = s.cfg.Interval
	}

	acquired, err := s.locker.Acquire(ctx, ImportRunningKey, ttl)
	if err != nil {
		s.logger.Error("failed to acquire running-import lock", zap.Error(err))
		return service.SyncResult{Error: err}, false
	}
	if !acquired {
		s.logger.Info("catalog import already in progress, skipping")
		return service.SyncResult{}, false
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), ImportRunningKey); err != nil {
			s.logger.Error("failed to release running-import lock", zap.Error(err))
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	result := s.syncer.Sync(runCtx)
	if result.Error != nil {
		s.logger.Warn("catalog import failed", zap.Error(result.Error))
	}

	return result, true
}
