// Package fixtures loads the static JSON catalog and serves it as a read-only store.
package fixtures

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

// Fixture file names inside the fixtures directory.
const (
	EpisodesFile = "episodes.json"
	VideosFile   = "videoContent.json"
	SeriesFile   = "series.json"
	CoursesFile  = "courses.json"
	UsersFile    = "users.json"
)

// Loader reads fixture files from a filesystem.
type Loader struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// NewLoader creates a loader rooted at dir on fs.
func NewLoader(fs afero.Fs, dir string, logger *zap.Logger) *Loader {
	return &Loader{
		fs:     fs,
		dir:    dir,
		logger: logger,
	}
}

// Load reads every fixture file and returns the catalog snapshot.
// A missing file is an error; an empty array is not.
func (l *Loader) Load() (*domain.Snapshot, error) {
	episodes, err := l.readArray(EpisodesFile)
	if err != nil {
		return nil, err
	}
	videos, err := l.readArray(VideosFile)
	if err != nil {
		return nil, err
	}
	series, err := l.readArray(SeriesFile)
	if err != nil {
		return nil, err
	}
	courses, err := l.readArray(CoursesFile)
	if err != nil {
		return nil, err
	}
	users, err := l.readArray(UsersFile)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		Episodes: make([]*domain.ContentItem, 0, len(episodes)),
		Videos:   make([]*domain.ContentItem, 0, len(videos)),
		Series:   make([]*domain.Series, 0, len(series)),
		Courses:  make([]*domain.Course, 0, len(courses)),
		Users:    make([]*domain.User, 0, len(users)),
	}

	for _, r := range episodes {
		snapshot.Episodes = append(snapshot.Episodes, parseEpisode(r))
	}
	for _, r := range videos {
		snapshot.Videos = append(snapshot.Videos, parseVideo(r))
	}
	for _, r := range series {
		snapshot.Series = append(snapshot.Series, parseSeries(r))
	}
	for _, r := range courses {
		snapshot.Courses = append(snapshot.Courses, parseCourse(r))
	}
	for _, r := range users {
		snapshot.Users = append(snapshot.Users, parseUser(r))
	}

	l.logger.Info("catalog fixtures loaded",
		zap.String("dir", l.dir),
		zap.Int("episodes", len(snapshot.Episodes)),
		zap.Int("videos", len(snapshot.Videos)),
		zap.Int("series", len(snapshot.Series)),
		zap.Int("courses", len(snapshot.Courses)),
		zap.Int("users", len(snapshot.Users)),
	)

	return snapshot, nil
}

// readArray reads a fixture file that must contain a top-level JSON array.
func (l *Loader) readArray(name string) ([]gjson.Result, error) {
	path := filepath.Join(l.dir, name)

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing fixture %s: invalid json", path)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("parsing fixture %s: expected a json array", path)
	}

	return root.Array(), nil
}

func parseContent(r gjson.Result, kind domain.ContentKind) *domain.ContentItem {
	uploadDate, _ := time.Parse(time.RFC3339, r.Get("uploadDate").String())
	if uploadDate.IsZero() {
		uploadDate, _ = time.Parse(time.DateOnly, r.Get("uploadDate").String())
	}

	return &domain.ContentItem{
		ID:          r.Get("id").String(),
		Kind:        kind,
		Title:       r.Get("title").String(),
		Description: r.Get("description").String(),
		Duration:    int(r.Get("duration").Int()),
		UploadDate:  uploadDate,
		CreatorID:   r.Get("creatorId").String(),
		VideoSource: r.Get("videoSource").String(),
		SourceID:    r.Get("sourceId").String(),
		Parent:      domain.NoParent(),
	}
}

// parseEpisode maps the optional seriesId/courseId fields onto a single parent relation.
// Series takes precedence when a record carries both.
func parseEpisode(r gjson.Result) *domain.ContentItem {
	item := parseContent(r, domain.ContentKindEpisode)

	if seriesID := r.Get("seriesId").String(); seriesID != "" {
		item.Parent = domain.SeriesParent(seriesID)
	} else if courseID := r.Get("courseId").String(); courseID != "" {
		item.Parent = domain.CourseParent(courseID)
	}

	if n := r.Get("episodeNumber"); n.Exists() && n.Type == gjson.Number {
		item.EpisodeNumber = domain.IntPtr(int(n.Int()))
	}

	return item
}

func parseVideo(r gjson.Result) *domain.ContentItem {
	return parseContent(r, domain.ContentKindStandalone)
}

func parseSeries(r gjson.Result) *domain.Series {
	return &domain.Series{
		ID:         r.Get("id").String(),
		Title:      r.Get("title").String(),
		EpisodeIDs: stringArray(r.Get("episodeIds")),
	}
}

func parseCourse(r gjson.Result) *domain.Course {
	course := &domain.Course{
		ID:              r.Get("id").String(),
		Title:           r.Get("title").String(),
		Description:     r.Get("description").String(),
		DifficultyLevel: domain.DifficultyLevel(r.Get("difficultyLevel").String()),
		ThumbnailURL:    r.Get("thumbnailUrl").String(),
		InstructorID:    r.Get("instructorId").String(),
		Duration:        int(r.Get("duration").Int()),
		ContentIDs:      stringArray(r.Get("contentIds")),
	}

	for _, m := range r.Get("modules").Array() {
		course.Modules = append(course.Modules, domain.Module{
			ID:    m.Get("id").String(),
			Title: m.Get("title").String(),
			Order: int(m.Get("order").Int()),
		})
	}

	return course
}

func parseUser(r gjson.Result) *domain.User {
	return &domain.User{
		ID:        r.Get("id").String(),
		Name:      r.Get("name").String(),
		AvatarURL: r.Get("avatarUrl").String(),
		Role:      r.Get("role").String(),
	}
}

func stringArray(r gjson.Result) []string {
	values := r.Array()
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}
