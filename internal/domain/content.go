// Package domain contains the core catalog entities and the rules that join them
// into navigable viewing contexts.
package domain

import (
	"math"
	"time"
)

// ContentKind discriminates the playable content variants.
type ContentKind string

const (
	ContentKindEpisode    ContentKind = "episode"
	ContentKindStandalone ContentKind = "standalone"
)

// ParentKind identifies the collection an episode belongs to.
type ParentKind string

const (
	ParentNone   ParentKind = "none"
	ParentSeries ParentKind = "series"
	ParentCourse ParentKind = "course"
)

// Parent is the discriminated collection relation of a content item.
// An item belongs to at most one series or course.
type Parent struct {
	Kind ParentKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
}

// NoParent returns the relation of an item outside any collection.
func NoParent() Parent {
	return Parent{Kind: ParentNone}
}

// SeriesParent returns a series relation.
func SeriesParent(id string) Parent {
	return Parent{Kind: ParentSeries, ID: id}
}

// CourseParent returns a course relation.
func CourseParent(id string) Parent {
	return Parent{Kind: ParentCourse, ID: id}
}

// ContentItem is a playable unit: an episode of a series/course or a standalone video.
type ContentItem struct {
	ID          string      `json:"id"`
	Kind        ContentKind `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Duration    int         `json:"duration"` // seconds
	UploadDate  time.Time   `json:"upload_date"`
	CreatorID   string      `json:"creator_id,omitempty"`
	VideoSource string      `json:"video_source,omitempty"` // e.g. "youtube"
	SourceID    string      `json:"source_id,omitempty"`

	// Episode-only fields. Standalone items always carry NoParent and a nil number.
	Parent        Parent `json:"parent"`
	EpisodeNumber *int   `json:"episode_number,omitempty"`
}

// NewEpisode creates an episode content item.
func NewEpisode(id, title string, number *int, parent Parent) *ContentItem {
	return &ContentItem{
		ID:            id,
		Kind:          ContentKindEpisode,
		Title:         title,
		Parent:        parent,
		EpisodeNumber: number,
	}
}

// NewStandalone creates a standalone video content item.
func NewStandalone(id, title string) *ContentItem {
	return &ContentItem{
		ID:     id,
		Kind:   ContentKindStandalone,
		Title:  title,
		Parent: NoParent(),
	}
}

// IsPlayable reports whether the item carries both playback fields.
func (c *ContentItem) IsPlayable() bool {
	return c.VideoSource != "" && c.SourceID != ""
}

// SortNumber returns the episode number used for ordering; missing numbers sort as 0.
func (c *ContentItem) SortNumber() int {
	if c.EpisodeNumber == nil {
		return 0
	}
	return *c.EpisodeNumber
}

// DurationMinutes returns the duration rounded to whole minutes.
func (c *ContentItem) DurationMinutes() int {
	return int(math.Round(float64(c.Duration) / 60))
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
