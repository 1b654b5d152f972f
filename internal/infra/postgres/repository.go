package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learning-platform-service/internal/domain"
)

const importBatchSize = 100

// Repository implements domain.CatalogStore and domain.CatalogImporter on PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindEpisode returns the episode with the given id, or nil.
func (r *Repository) FindEpisode(ctx context.Context, id string) (*domain.ContentItem, error) {
	return r.findContent(ctx, id, domain.ContentKindEpisode)
}

// FindVideo returns the standalone video with the given id, or nil.
func (r *Repository) FindVideo(ctx context.Context, id string) (*domain.ContentItem, error) {
	return r.findContent(ctx, id, domain.ContentKindStandalone)
}

func (r *Repository) findContent(ctx context.Context, id string, kind domain.ContentKind) (*domain.ContentItem, error) {
	var model ContentModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND kind = ?", id, string(kind)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting %s %s: %w", kind, id, err)
	}

	return model.ToDomain(), nil
}

// FindSeries returns the series with the given id, or nil.
func (r *Repository) FindSeries(ctx context.Context, id string) (*domain.Series, error) {
	var model SeriesModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting series %s: %w", id, err)
	}

	return model.ToDomain(), nil
}

// FindCourse returns the course with its modules, or nil.
func (r *Repository) FindCourse(ctx context.Context, id string) (*domain.Course, error) {
	var model CourseModel
	err := r.withModules(r.db.WithContext(ctx)).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting course %s: %w", id, err)
	}

	return model.ToDomain(), nil
}

// FindUser returns the user with the given id, or nil.
func (r *Repository) FindUser(ctx context.Context, id string) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}

	return model.ToDomain(), nil
}

// EpisodesByIDs returns the matching episodes ordered by their catalog position.
func (r *Repository) EpisodesByIDs(ctx context.Context, ids []string) ([]*domain.ContentItem, error) {
	if len(ids) == 0 {
		return []*domain.ContentItem{}, nil
	}

	var models []ContentModel
	err := r.db.WithContext(ctx).
		Where("kind = ? AND id IN ?", string(domain.ContentKindEpisode), ids).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing episodes by ids: %w", err)
	}

	return lo.Map(models, func(m ContentModel, _ int) *domain.ContentItem {
		return m.ToDomain()
	}), nil
}

// ListCourses returns all courses in catalog order.
func (r *Repository) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	var models []CourseModel
	if err := r.withModules(r.db.WithContext(ctx)).Order("position ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	return lo.Map(models, func(m CourseModel, _ int) *domain.Course {
		return m.ToDomain()
	}), nil
}

func (r *Repository) withModules(db *gorm.DB) *gorm.DB {
	return db.Preload("Modules", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// Import replaces the stored catalog with the snapshot in one transaction.
// Rows are upserted by id; rows missing from the snapshot are removed.
// Within a collection the first record with a given id wins.
func (r *Repository) Import(ctx context.Context, snapshot *domain.Snapshot) error {
	now := time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := importUsers(tx, snapshot.Users, now); err != nil {
			return err
		}
		if err := importContents(tx, domain.ContentKindEpisode, snapshot.Episodes, now); err != nil {
			return err
		}
		if err := importContents(tx, domain.ContentKindStandalone, snapshot.Videos, now); err != nil {
			return err
		}
		if err := importSeries(tx, snapshot.Series, now); err != nil {
			return err
		}
		return importCourses(tx, snapshot.Courses, now)
	})
}

func importUsers(tx *gorm.DB, users []*domain.User, now time.Time) error {
	users = lo.UniqBy(users, func(u *domain.User) string { return u.ID })
	models := lo.Map(users, func(u *domain.User, _ int) *UserModel {
		return &UserModel{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL, Role: u.Role, UpdatedAt: now}
	})

	if len(models) > 0 {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "avatar_url", "role", "updated_at"}),
		}).CreateInBatches(models, importBatchSize).Error
		if err != nil {
			return fmt.Errorf("upserting users: %w", err)
		}
	}

	ids := lo.Map(users, func(u *domain.User, _ int) string { return u.ID })
	if err := deleteMissing(tx, &UserModel{}, ids); err != nil {
		return fmt.Errorf("pruning users: %w", err)
	}

	return nil
}

func importContents(tx *gorm.DB, kind domain.ContentKind, items []*domain.ContentItem, now time.Time) error {
	items = lo.UniqBy(items, func(c *domain.ContentItem) string { return c.ID })
	models := lo.Map(items, func(c *domain.ContentItem, i int) *ContentModel {
		m := contentFromDomain(c, i)
		m.Kind = string(kind)
		m.UpdatedAt = now
		return m
	})

	if len(models) > 0 {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"position", "title", "description", "duration", "upload_date",
				"creator_id", "video_source", "source_id",
				"parent_kind", "parent_id", "episode_number", "updated_at",
			}),
		}).CreateInBatches(models, importBatchSize).Error
		if err != nil {
			return fmt.Errorf("upserting %s contents: %w", kind, err)
		}
	}

	ids := lo.Map(items, func(c *domain.ContentItem, _ int) string { return c.ID })
	query := tx.Where("kind = ?", string(kind))
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}
	if err := query.Delete(&ContentModel{}).Error; err != nil {
		return fmt.Errorf("pruning %s contents: %w", kind, err)
	}

	return nil
}

func importSeries(tx *gorm.DB, series []*domain.Series, now time.Time) error {
	series = lo.UniqBy(series, func(s *domain.Series) string { return s.ID })
	models := lo.Map(series, func(s *domain.Series, i int) *SeriesModel {
		return &SeriesModel{ID: s.ID, Position: i, Title: s.Title, EpisodeIDs: s.EpisodeIDs, UpdatedAt: now}
	})

	if len(models) > 0 {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "title", "episode_ids", "updated_at"}),
		}).CreateInBatches(models, importBatchSize).Error
		if err != nil {
			return fmt.Errorf("upserting series: %w", err)
		}
	}

	ids := lo.Map(series, func(s *domain.Series, _ int) string { return s.ID })
	if err := deleteMissing(tx, &SeriesModel{}, ids); err != nil {
		return fmt.Errorf("pruning series: %w", err)
	}

	return nil
}

func importCourses(tx *gorm.DB, courses []*domain.Course, now time.Time) error {
	courses = lo.UniqBy(courses, func(c *domain.Course) string { return c.ID })
	models := lo.Map(courses, func(c *domain.Course, i int) *CourseModel {
		return &CourseModel{
			ID:              c.ID,
			Position:        i,
			Title:           c.Title,
			Description:     c.Description,
			DifficultyLevel: string(c.DifficultyLevel),
			ThumbnailURL:    c.ThumbnailURL,
			InstructorID:    c.InstructorID,
			Duration:        c.Duration,
			ContentIDs:      c.ContentIDs,
			UpdatedAt:       now,
		}
	})

	if len(models) > 0 {
		err := tx.Omit("Modules").Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"position", "title", "description", "difficulty_level", "thumbnail_url",
				"instructor_id", "duration", "content_ids", "updated_at",
			}),
		}).CreateInBatches(models, importBatchSize).Error
		if err != nil {
			return fmt.Errorf("upserting courses: %w", err)
		}
	}

	ids := lo.Map(courses, func(c *domain.Course, _ int) string { return c.ID })
	if err := deleteMissing(tx, &CourseModel{}, ids); err != nil {
		return fmt.Errorf("pruning courses: %w", err)
	}

	// Modules are rewritten wholesale per import.
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ModuleModel{}).Error; err != nil {
		return fmt.Errorf("clearing course modules: %w", err)
	}

	var modules []*ModuleModel
	for _, c := range courses {
		seen := make(map[string]bool, len(c.Modules))
		for i, m := range c.Modules {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			modules = append(modules, &ModuleModel{CourseID: c.ID, ID: m.ID, Position: i, Title: m.Title, Order: m.Order})
		}
	}
	if len(modules) > 0 {
		if err := tx.CreateInBatches(modules, importBatchSize).Error; err != nil {
			return fmt.Errorf("inserting course modules: %w", err)
		}
	}

	return nil
}

// deleteMissing removes rows of model whose id is not in keep.
func deleteMissing(tx *gorm.DB, model interface{}, keep []string) error {
	if len(keep) == 0 {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
	}

	return tx.Where("id NOT IN ?", keep).Delete(model).Error
}

// Counts returns the number of stored rows per catalog table.
func (r *Repository) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 5)
	tables := map[string]interface{}{
		"contents":       &ContentModel{},
		"series":         &SeriesModel{},
		"courses":        &CourseModel{},
		"course_modules": &ModuleModel{},
		"users":          &UserModel{},
	}

	for name, model := range tables {
		var n int64
		if err := r.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("counting %s: %w", name, err)
		}
		counts[name] = n
	}

	return counts, nil
}
