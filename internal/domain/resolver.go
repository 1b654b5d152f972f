package domain

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// ContextType is the kind of collection a related context describes.
type ContextType string

const (
	ContextSeries ContextType = "series"
	ContextCourse ContextType = "course"
)

// ContextItem is a sibling entry in a related context.
type ContextItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Number *int   `json:"number,omitempty"`
}

// RelatedContext is the parent collection of a content item with its ordered members.
type RelatedContext struct {
	Type  ContextType   `json:"type"`
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Items []ContextItem `json:"items"`
}

// ResolvedContent is the viewing context of a playable content item.
type ResolvedContent struct {
	Content *ContentItem    `json:"content"`
	Creator *User           `json:"creator"`
	Related *RelatedContext `json:"related_context,omitempty"`
}

// Navigation holds the neighbours of the current item inside its related context.
type Navigation struct {
	Prev *ContextItem `json:"prev_item"`
	Next *ContextItem `json:"next_item"`
}

// ContentResolver joins a content id against the catalog.
type ContentResolver struct {
	store CatalogStore
}

// NewContentResolver creates a resolver over the given catalog store.
func NewContentResolver(store CatalogStore) *ContentResolver {
	return &ContentResolver{store: store}
}

// Resolve locates the content item, its creator and its parent collection.
// Returns nil when the id is unknown or the item is not playable.
// Dangling creator or collection references degrade silently.
func (r *ContentResolver) Resolve(ctx context.Context, contentID string) (*ResolvedContent, error) {
	content, err := r.findContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if content == nil || !content.IsPlayable() {
		return nil, nil
	}

	var creator *User
	if content.CreatorID != "" {
		creator, err = r.store.FindUser(ctx, content.CreatorID)
		if err != nil {
			return nil, fmt.Errorf("finding creator %s: %w", content.CreatorID, err)
		}
	}

	related, err := r.relatedContext(ctx, content.Parent)
	if err != nil {
		return nil, err
	}

	return &ResolvedContent{
		Content: content,
		Creator: creator,
		Related: related,
	}, nil
}

// findContent checks episodes first, then standalone videos.
func (r *ContentResolver) findContent(ctx context.Context, id string) (*ContentItem, error) {
	episode, err := r.store.FindEpisode(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding episode %s: %w", id, err)
	}
	if episode != nil {
		return episode, nil
	}

	video, err := r.store.FindVideo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding video %s: %w", id, err)
	}

	return video, nil
}

func (r *ContentResolver) relatedContext(ctx context.Context, parent Parent) (*RelatedContext, error) {
	if parent.ID == "" {
		return nil, nil
	}

	var (
		ctxType   ContextType
		title     string
		memberIDs []string
	)

	switch parent.Kind {
	case ParentSeries:
		series, err := r.store.FindSeries(ctx, parent.ID)
		if err != nil {
			return nil, fmt.Errorf("finding series %s: %w", parent.ID, err)
		}
		if series == nil {
			return nil, nil
		}
		ctxType, title, memberIDs = ContextSeries, series.Title, series.EpisodeIDs
	case ParentCourse:
		course, err := r.store.FindCourse(ctx, parent.ID)
		if err != nil {
			return nil, fmt.Errorf("finding course %s: %w", parent.ID, err)
		}
		if course == nil {
			return nil, nil
		}
		ctxType, title, memberIDs = ContextCourse, course.Title, course.ContentIDs
	default:
		return nil, nil
	}

	members, err := r.store.EpisodesByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("gathering %s %s members: %w", ctxType, parent.ID, err)
	}

	return &RelatedContext{
		Type:  ctxType,
		ID:    parent.ID,
		Title: title,
		Items: orderedItems(members),
	}, nil
}

// orderedItems sorts members by episode number, keeping catalog order for ties.
func orderedItems(members []*ContentItem) []ContextItem {
	sorted := make([]*ContentItem, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortNumber() < sorted[j].SortNumber()
	})

	return lo.Map(sorted, func(ep *ContentItem, _ int) ContextItem {
		return ContextItem{
			ID:     ep.ID,
			Title:  ep.Title,
			Number: ep.EpisodeNumber,
		}
	})
}

// LocatePrevNext finds the neighbours of currentID inside related.
// An id that is not a member yields no neighbours.
func LocatePrevNext(related *RelatedContext, currentID string) Navigation {
	if related == nil {
		return Navigation{}
	}

	_, index, found := lo.FindIndexOf(related.Items, func(item ContextItem) bool {
		return item.ID == currentID
	})
	if !found {
		return Navigation{}
	}

	var nav Navigation
	if index > 0 {
		prev := related.Items[index-1]
		nav.Prev = &prev
	}
	if index < len(related.Items)-1 {
		next := related.Items[index+1]
		nav.Next = &next
	}

	return nav
}
