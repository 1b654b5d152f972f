// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

const watchCacheKeyPrefix = "watch:"

// SidebarItem is a row of the watch page's collection sidebar.
type SidebarItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	DisplayNumber int    `json:"display_number"`
	IsCurrent     bool   `json:"is_current"`
}

// WatchPage is everything the watch page renders for one content item.
type WatchPage struct {
	Content         *domain.ContentItem    `json:"content"`
	Creator         *domain.User           `json:"creator"`
	Related         *domain.RelatedContext `json:"related_context,omitempty"`
	Sidebar         []SidebarItem          `json:"sidebar"`
	Prev            *domain.ContextItem    `json:"prev_item"`
	Next            *domain.ContextItem    `json:"next_item"`
	DurationMinutes int                    `json:"duration_minutes"`
	UploadedOn      string                 `json:"uploaded_on,omitempty"`
	CollectionPath  string                 `json:"collection_path,omitempty"`
}

// ContentService resolves watch pages, optionally through a cache.
type ContentService struct {
	resolver *domain.ContentResolver
	cache    domain.Cache // nil disables caching
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewContentService creates a new ContentService. cache may be nil.
func NewContentService(store domain.CatalogStore, cache domain.Cache, cacheTTL time.Duration, logger *zap.Logger) *ContentService {
	return &ContentService{
		resolver: domain.NewContentResolver(store),
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Resolve returns the resolved content, or nil when the id is unknown or unplayable.
func (s *ContentService) Resolve(ctx context.Context, contentID string) (*domain.ResolvedContent, error) {
	resolved, err := s.resolver.Resolve(ctx, contentID)
	if err != nil {
		s.logger.Error("resolving content failed", zap.String("content_id", contentID), zap.Error(err))
		return nil, fmt.Errorf("resolving content %s: %w", contentID, err)
	}

	return resolved, nil
}

// Watch returns the watch page for contentID, or nil when there is nothing to play.
func (s *ContentService) Watch(ctx context.Context, contentID string) (*WatchPage, error) {
	if page := s.cachedPage(ctx, contentID); page != nil {
		return page, nil
	}

	resolved, err := s.Resolve(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		s.logger.Debug("content not found", zap.String("content_id", contentID))
		return nil, nil
	}

	page := NewWatchPage(resolved)
	s.storePage(ctx, contentID, page)

	return page, nil
}

// NewWatchPage derives the watch page view from a resolved content item.
func NewWatchPage(resolved *domain.ResolvedContent) *WatchPage {
	content := resolved.Content
	page := &WatchPage{
		Content:         content,
		Creator:         resolved.Creator,
		Related:         resolved.Related,
		Sidebar:         []SidebarItem{},
		DurationMinutes: content.DurationMinutes(),
	}

	if !content.UploadDate.IsZero() {
		page.UploadedOn = content.UploadDate.Format("Jan 2, 2006")
	}

	if resolved.Related != nil {
		nav := domain.LocatePrevNext(resolved.Related, content.ID)
		page.Prev, page.Next = nav.Prev, nav.Next
		page.CollectionPath = fmt.Sprintf("/%s/%s", collectionSegment(resolved.Related.Type), resolved.Related.ID)

		for i, item := range resolved.Related.Items {
			page.Sidebar = append(page.Sidebar, SidebarItem{
				ID:            item.ID,
				Title:         item.Title,
				DisplayNumber: displayNumber(item, i),
				IsCurrent:     item.ID == content.ID,
			})
		}
	}

	return page
}

func collectionSegment(t domain.ContextType) string {
	if t == domain.ContextCourse {
		return "courses"
	}
	return "series"
}

// displayNumber is the item's own number, falling back to its 1-based position
// when the number is missing or zero.
func displayNumber(item domain.ContextItem, index int) int {
	if item.Number == nil || *item.Number == 0 {
		return index + 1
	}
	return *item.Number
}

func (s *ContentService) cachedPage(ctx context.Context, contentID string) *WatchPage {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, watchCacheKeyPrefix+contentID)
	if err != nil || data == nil {
		return nil
	}

	var page WatchPage
	if err := json.Unmarshal(data, &page); err != nil {
		s.logger.Warn("discarding undecodable cached watch page",
			zap.String("content_id", contentID),
			zap.Error(err),
		)
		return nil
	}

	return &page
}

func (s *ContentService) storePage(ctx context.Context, contentID string, page *WatchPage) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(page)
	if err != nil {
		s.logger.Warn("encoding watch page for cache failed", zap.Error(err))
		return
	}

	// Cache failures only cost a future lookup.
	_ = s.cache.Set(ctx, watchCacheKeyPrefix+contentID, data, s.cacheTTL)
}
