package postgres

import (
	"time"

	"github.com/lib/pq"

	"learning-platform-service/internal/domain"
)

// ContentModel is the GORM model for the contents table.
// Episodes and standalone videos share the table, discriminated by kind.
type ContentModel struct {
	ID            string    `gorm:"type:varchar(100);primaryKey"`
	Kind          string    `gorm:"type:varchar(20);primaryKey"`
	Position      int       `gorm:"not null;index"`
	Title         string    `gorm:"type:varchar(500);not null"`
	Description   string    `gorm:"type:text"`
	Duration      int       `gorm:"default:0"`
	UploadDate    time.Time `gorm:"index"`
	CreatorID     string    `gorm:"type:varchar(100);index"`
	VideoSource   string    `gorm:"type:varchar(50)"`
	SourceID      string    `gorm:"type:varchar(200)"`
	ParentKind    string    `gorm:"type:varchar(20);not null;default:'none'"`
	ParentID      string    `gorm:"type:varchar(100);index"`
	EpisodeNumber *int
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ContentModel.
func (ContentModel) TableName() string {
	return "contents"
}

// ToDomain converts ContentModel to domain.ContentItem.
func (m *ContentModel) ToDomain() *domain.ContentItem {
	parent := domain.Parent{Kind: domain.ParentKind(m.ParentKind), ID: m.ParentID}
	if parent.Kind == "" {
		parent = domain.NoParent()
	}

	return &domain.ContentItem{
		ID:            m.ID,
		Kind:          domain.ContentKind(m.Kind),
		Title:         m.Title,
		Description:   m.Description,
		Duration:      m.Duration,
		UploadDate:    m.UploadDate,
		CreatorID:     m.CreatorID,
		VideoSource:   m.VideoSource,
		SourceID:      m.SourceID,
		Parent:        parent,
		EpisodeNumber: m.EpisodeNumber,
	}
}

// contentFromDomain creates a ContentModel from domain.ContentItem.
func contentFromDomain(c *domain.ContentItem, position int) *ContentModel {
	return &ContentModel{
		ID:            c.ID,
		Kind:          string(c.Kind),
		Position:      position,
		Title:         c.Title,
		Description:   c.Description,
		Duration:      c.Duration,
		UploadDate:    c.UploadDate,
		CreatorID:     c.CreatorID,
		VideoSource:   c.VideoSource,
		SourceID:      c.SourceID,
		ParentKind:    string(c.Parent.Kind),
		ParentID:      c.Parent.ID,
		EpisodeNumber: c.EpisodeNumber,
	}
}

// SeriesModel is the GORM model for the series table.
type SeriesModel struct {
	ID         string         `gorm:"type:varchar(100);primaryKey"`
	Position   int            `gorm:"not null"`
	Title      string         `gorm:"type:varchar(500);not null"`
	EpisodeIDs pq.StringArray `gorm:"type:text[]"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

// TableName returns the table name for SeriesModel.
func (SeriesModel) TableName() string {
	return "series"
}

// ToDomain converts SeriesModel to domain.Series.
func (m *SeriesModel) ToDomain() *domain.Series {
	return &domain.Series{
		ID:         m.ID,
		Title:      m.Title,
		EpisodeIDs: []string(m.EpisodeIDs),
	}
}

// CourseModel is the GORM model for the courses table.
type CourseModel struct {
	ID              string         `gorm:"type:varchar(100);primaryKey"`
	Position        int            `gorm:"not null;index"`
	Title           string         `gorm:"type:varchar(500);not null"`
	Description     string         `gorm:"type:text"`
	DifficultyLevel string         `gorm:"type:varchar(20);index"`
	ThumbnailURL    string         `gorm:"type:text"`
	InstructorID    string         `gorm:"type:varchar(100)"`
	Duration        int            `gorm:"default:0"`
	ContentIDs      pq.StringArray `gorm:"type:text[]"`
	Modules         []ModuleModel  `gorm:"foreignKey:CourseID;references:ID"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

// TableName returns the table name for CourseModel.
func (CourseModel) TableName() string {
	return "courses"
}

// ToDomain converts CourseModel to domain.Course.
func (m *CourseModel) ToDomain() *domain.Course {
	course := &domain.Course{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		DifficultyLevel: domain.DifficultyLevel(m.DifficultyLevel),
		ThumbnailURL:    m.ThumbnailURL,
		InstructorID:    m.InstructorID,
		Duration:        m.Duration,
		ContentIDs:      []string(m.ContentIDs),
	}
	if course.ContentIDs == nil {
		course.ContentIDs = []string{}
	}
	for _, mod := range m.Modules {
		course.Modules = append(course.Modules, domain.Module{
			ID:    mod.ID,
			Title: mod.Title,
			Order: mod.Order,
		})
	}

	return course
}

// ModuleModel is the GORM model for the course_modules table.
// Position keeps the stored order so that equal Order values stay stable.
type ModuleModel struct {
	CourseID string `gorm:"type:varchar(100);primaryKey"`
	ID       string `gorm:"type:varchar(100);primaryKey"`
	Position int    `gorm:"not null"`
	Title    string `gorm:"type:varchar(500);not null"`
	Order    int    `gorm:"column:sort_order;not null"`
}

// TableName returns the table name for ModuleModel.
func (ModuleModel) TableName() string {
	return "course_modules"
}

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        string    `gorm:"type:varchar(100);primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	AvatarURL string    `gorm:"type:text"`
	Role      string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain.User.
func (m *UserModel) ToDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
		Role:      m.Role,
	}
}
