package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/infra/fixtures"
)

type recordingImporter struct {
	mu        sync.Mutex
	err       error
	snapshots []*domain.Snapshot
}

func (r *recordingImporter) Import(_ context.Context, snapshot *domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

func newFixtureLoader(t *testing.T, withCourses bool) *fixtures.Loader {
	t.Helper()

	files := map[string]string{
		fixtures.EpisodesFile: `[{"id":"e1","title":"One","seriesId":"S1","episodeNumber":1,"videoSource":"youtube","sourceId":"y1"}]`,
		fixtures.VideosFile:   `[{"id":"v1","title":"Talk"},{"id":"v2","title":"Panel"}]`,
		fixtures.SeriesFile:   `[{"id":"S1","title":"Series","episodeIds":["e1"]}]`,
		fixtures.UsersFile:    `[]`,
	}
	if withCourses {
		files[fixtures.CoursesFile] = `[{"id":"C1","title":"Course","contentIds":[]}]`
	}

	fs := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/data", name), []byte(body), 0o644))
	}

	return fixtures.NewLoader(fs, "/data", zap.NewNop())
}

func TestCatalogSyncService_Sync(t *testing.T) {
	importer := &recordingImporter{}
	cache := newMemCache()
	svc := NewCatalogSyncService(newFixtureLoader(t, true), importer, cache, zap.NewNop())

	assert.Nil(t, svc.LastResult())

	result := svc.Sync(context.Background())
	require.NoError(t, result.Error)
	assert.Equal(t, 1, result.Episodes)
	assert.Equal(t, 2, result.Videos)
	assert.Equal(t, 1, result.Series)
	assert.Equal(t, 1, result.Courses)
	assert.Equal(t, 0, result.Users)
	assert.Equal(t, 5, result.Total())

	require.Len(t, importer.snapshots, 1)
	assert.Equal(t, "e1", importer.snapshots[0].Episodes[0].ID)
	assert.Equal(t, 1, cache.cleared)

	last := svc.LastResult()
	require.NotNil(t, last)
	assert.Equal(t, result.Total(), last.Total())
}

func TestCatalogSyncService_WithoutCache(t *testing.T) {
	svc := NewCatalogSyncService(newFixtureLoader(t, true), &recordingImporter{}, nil, zap.NewNop())

	result := svc.Sync(context.Background())
	assert.NoError(t, result.Error)
}

func TestCatalogSyncService_LoadFailure(t *testing.T) {
	importer := &recordingImporter{}
	cache := newMemCache()
	svc := NewCatalogSyncService(newFixtureLoader(t, false), importer, cache, zap.NewNop())

	result := svc.Sync(context.Background())
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "loading catalog snapshot")
	assert.Empty(t, importer.snapshots)
	assert.Zero(t, cache.cleared)

	last := svc.LastResult()
	require.NotNil(t, last)
	assert.Error(t, last.Error)
}

func TestCatalogSyncService_ImportFailure(t *testing.T) {
	cache := newMemCache()
	svc := NewCatalogSyncService(newFixtureLoader(t, true), &recordingImporter{err: errBoom}, cache, zap.NewNop())

	result := svc.Sync(context.Background())
	assert.ErrorIs(t, result.Error, errBoom)
	assert.Zero(t, result.Total())
	assert.Zero(t, cache.cleared, "cache survives a failed import")
}

func TestCatalogSyncService_ConcurrentRuns(t *testing.T) {
	importer := &recordingImporter{}
	svc := NewCatalogSyncService(newFixtureLoader(t, true), importer, nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Sync(context.Background())
		}()
	}
	wg.Wait()

	assert.Len(t, importer.snapshots, 4)
}
