package fixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

const testDir = "/data"

var testFiles = map[string]string{
	EpisodesFile: `[
		{"id":"e2","title":"Two","duration":120,"uploadDate":"2024-01-02T00:00:00Z","creatorId":"u1","videoSource":"youtube","sourceId":"s2","seriesId":"S1","episodeNumber":2},
		{"id":"e1","title":"One","duration":60,"uploadDate":"2024-01-01","creatorId":"u1","videoSource":"youtube","sourceId":"s1","seriesId":"S1","episodeNumber":1},
		{"id":"l1","title":"Lesson","duration":90,"creatorId":"u2","videoSource":"youtube","sourceId":"s3","courseId":"C1"},
		{"id":"both","title":"Both Parents","seriesId":"S1","courseId":"C1","episodeNumber":"7"},
		{"id":"e1","title":"Duplicate One"}
	]`,
	VideosFile: `[{"id":"v1","title":"Talk","videoSource":"vimeo","sourceId":"vm1"}]`,
	SeriesFile: `[{"id":"S1","title":"Series","episodeIds":["e2","e1","missing"]}]`,
	CoursesFile: `[
		{"id":"C1","title":"Course","difficultyLevel":"beginner","duration":3600,"contentIds":["l1"],
		 "modules":[{"id":"m2","title":"Second","order":2},{"id":"m1","title":"First","order":1}]},
		{"id":"C2","title":"Empty","difficultyLevel":"advanced"}
	]`,
	UsersFile: `[{"id":"u1","name":"Ada","avatarUrl":"https://example.com/a.png","role":"instructor"}]`,
}

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, name), []byte(body), 0o644))
	}
	return fs
}

func loadTestSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()

	snapshot, err := NewLoader(newTestFs(t, testFiles), testDir, zap.NewNop()).Load()
	require.NoError(t, err)
	return snapshot
}

func TestLoader_Load(t *testing.T) {
	snapshot := loadTestSnapshot(t)

	require.Len(t, snapshot.Episodes, 5)
	assert.Len(t, snapshot.Videos, 1)
	assert.Len(t, snapshot.Series, 1)
	assert.Len(t, snapshot.Courses, 2)
	assert.Len(t, snapshot.Users, 1)

	e2 := snapshot.Episodes[0]
	assert.Equal(t, "e2", e2.ID)
	assert.Equal(t, domain.ContentKindEpisode, e2.Kind)
	assert.Equal(t, domain.SeriesParent("S1"), e2.Parent)
	require.NotNil(t, e2.EpisodeNumber)
	assert.Equal(t, 2, *e2.EpisodeNumber)
	assert.Equal(t, 120, e2.Duration)
	assert.Equal(t, 2024, e2.UploadDate.Year())
	assert.True(t, e2.IsPlayable())

	// Date-only upload dates are accepted.
	assert.False(t, snapshot.Episodes[1].UploadDate.IsZero())

	lesson := snapshot.Episodes[2]
	assert.Equal(t, domain.CourseParent("C1"), lesson.Parent)
	assert.Nil(t, lesson.EpisodeNumber)
	assert.True(t, lesson.UploadDate.IsZero())

	video := snapshot.Videos[0]
	assert.Equal(t, domain.ContentKindStandalone, video.Kind)
	assert.Equal(t, domain.NoParent(), video.Parent)

	assert.Equal(t, []string{"e2", "e1", "missing"}, snapshot.Series[0].EpisodeIDs)

	course := snapshot.Courses[0]
	assert.Equal(t, domain.DifficultyBeginner, course.DifficultyLevel)
	assert.Equal(t, []string{"l1"}, course.ContentIDs)
	require.Len(t, course.Modules, 2)
	assert.Equal(t, "m2", course.Modules[0].ID)
	assert.Empty(t, snapshot.Courses[1].ContentIDs)
	assert.Nil(t, snapshot.Courses[1].Modules)

	assert.Equal(t, "https://example.com/a.png", snapshot.Users[0].AvatarURL)
}

func TestLoader_SeriesWinsOverCourse(t *testing.T) {
	snapshot := loadTestSnapshot(t)

	both := snapshot.Episodes[3]
	assert.Equal(t, domain.SeriesParent("S1"), both.Parent)
	// Non-numeric episode numbers are ignored.
	assert.Nil(t, both.EpisodeNumber)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(files map[string]string)
		wantErr string
	}{
		{
			name:    "missing file",
			mutate:  func(files map[string]string) { delete(files, UsersFile) },
			wantErr: "reading fixture",
		},
		{
			name:    "invalid json",
			mutate:  func(files map[string]string) { files[SeriesFile] = `[{"id":` },
			wantErr: "invalid json",
		},
		{
			name:    "not an array",
			mutate:  func(files map[string]string) { files[CoursesFile] = `{"id":"C1"}` },
			wantErr: "expected a json array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := make(map[string]string, len(testFiles))
			for k, v := range testFiles {
				files[k] = v
			}
			tt.mutate(files)

			_, err := NewLoader(newTestFs(t, files), testDir, zap.NewNop()).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalog_Lookups(t *testing.T) {
	catalog := NewCatalog(loadTestSnapshot(t))
	ctx := context.Background()

	ep, err := catalog.FindEpisode(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "One", ep.Title, "first record wins on duplicate ids")

	missing, err := catalog.FindEpisode(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	v, _ := catalog.FindVideo(ctx, "v1")
	assert.Equal(t, "Talk", v.Title)

	s, _ := catalog.FindSeries(ctx, "S1")
	assert.Equal(t, "Series", s.Title)

	c, _ := catalog.FindCourse(ctx, "C2")
	assert.Equal(t, "Empty", c.Title)

	u, _ := catalog.FindUser(ctx, "u1")
	assert.Equal(t, "Ada", u.Name)

	courses, _ := catalog.ListCourses(ctx)
	assert.Len(t, courses, 2)
}

func TestCatalog_EpisodesByIDs_CatalogOrder(t *testing.T) {
	catalog := NewCatalog(loadTestSnapshot(t))

	members, err := catalog.EpisodesByIDs(context.Background(), []string{"l1", "e2", "missing"})
	require.NoError(t, err)

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"e2", "l1"}, ids)
}

func TestCatalog_EpisodesByIDs_FirstRecordWins(t *testing.T) {
	catalog := NewCatalog(loadTestSnapshot(t))
	ctx := context.Background()

	members, err := catalog.EpisodesByIDs(ctx, []string{"e1"})
	require.NoError(t, err)
	require.Len(t, members, 1)

	first, err := catalog.FindEpisode(ctx, "e1")
	require.NoError(t, err)
	assert.Same(t, first, members[0])
}

func TestCatalog_WithResolver(t *testing.T) {
	resolver := domain.NewContentResolver(NewCatalog(loadTestSnapshot(t)))

	got, err := resolver.Resolve(context.Background(), "e2")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Related)

	ids := make([]string, len(got.Related.Items))
	for i, item := range got.Related.Items {
		ids[i] = item.ID
	}
	assert.Equal(t, []string{"e1", "e2"}, ids)
	assert.Equal(t, "One", got.Related.Items[0].Title, "sidebar uses the first e1 record")
	assert.Equal(t, "Ada", got.Creator.Name)
}
