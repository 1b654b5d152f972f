package dto

import (
	"time"

	"github.com/samber/lo"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/domain"
)

// ContentResponse represents a playable content item in the response.
type ContentResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Duration      int    `json:"duration"`
	UploadDate    string `json:"upload_date,omitempty"`
	CreatorID     string `json:"creator_id,omitempty"`
	VideoSource   string `json:"video_source,omitempty"`
	SourceID      string `json:"source_id,omitempty"`
	SeriesID      string `json:"series_id,omitempty"`
	CourseID      string `json:"course_id,omitempty"`
	EpisodeNumber *int   `json:"episode_number,omitempty"`
}

// FromDomainContent converts domain.ContentItem to ContentResponse.
func FromDomainContent(c *domain.ContentItem) ContentResponse {
	resp := ContentResponse{
		ID:            c.ID,
		Kind:          string(c.Kind),
		Title:         c.Title,
		Description:   c.Description,
		Duration:      c.Duration,
		CreatorID:     c.CreatorID,
		VideoSource:   c.VideoSource,
		SourceID:      c.SourceID,
		EpisodeNumber: c.EpisodeNumber,
	}
	if !c.UploadDate.IsZero() {
		resp.UploadDate = c.UploadDate.Format(time.RFC3339)
	}

	switch c.Parent.Kind {
	case domain.ParentSeries:
		resp.SeriesID = c.Parent.ID
	case domain.ParentCourse:
		resp.CourseID = c.Parent.ID
	}

	return resp
}

// WatchResponse is the watch page bundle.
type WatchResponse struct {
	Content         ContentResponse        `json:"content"`
	Creator         *domain.User           `json:"creator"`
	RelatedContext  *domain.RelatedContext `json:"related_context"`
	Sidebar         []service.SidebarItem  `json:"sidebar"`
	PrevItem        *domain.ContextItem    `json:"prev_item"`
	NextItem        *domain.ContextItem    `json:"next_item"`
	DurationMinutes int                    `json:"duration_minutes"`
	UploadedOn      string                 `json:"uploaded_on,omitempty"`
	CollectionPath  string                 `json:"collection_path,omitempty"`
}

// FromWatchPage converts service.WatchPage to WatchResponse.
func FromWatchPage(p *service.WatchPage) WatchResponse {
	return WatchResponse{
		Content:         FromDomainContent(p.Content),
		Creator:         p.Creator,
		RelatedContext:  p.Related,
		Sidebar:         p.Sidebar,
		PrevItem:        p.Prev,
		NextItem:        p.Next,
		DurationMinutes: p.DurationMinutes,
		UploadedOn:      p.UploadedOn,
		CollectionPath:  p.CollectionPath,
	}
}

// CourseResponse is a course card.
type CourseResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DifficultyLevel string `json:"difficulty_level"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	InstructorID    string `json:"instructor_id,omitempty"`
	Duration        int    `json:"duration"`
	LessonCount     int    `json:"lesson_count"`
}

// FromDomainCourse converts domain.Course to CourseResponse.
func FromDomainCourse(c *domain.Course) CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		DifficultyLevel: string(c.DifficultyLevel),
		ThumbnailURL:    c.ThumbnailURL,
		InstructorID:    c.InstructorID,
		Duration:        c.Duration,
		LessonCount:     len(c.ContentIDs),
	}
}

// FromDomainCourses converts a course list, never returning nil.
func FromDomainCourses(courses []*domain.Course) []CourseResponse {
	return lo.Map(courses, func(c *domain.Course, _ int) CourseResponse {
		return FromDomainCourse(c)
	})
}

// CourseListResponse represents the course listing.
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	Total   int              `json:"total"`
}

// CourseDetailResponse is the course page bundle.
type CourseDetailResponse struct {
	Course           CourseResponse `json:"course"`
	Instructor       *domain.User   `json:"instructor"`
	Outline          domain.Outline `json:"outline"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	FirstLessonID    string         `json:"first_lesson_id,omitempty"`
}

// FromCourseDetail converts domain.CourseDetail to CourseDetailResponse.
func FromCourseDetail(d *domain.CourseDetail) CourseDetailResponse {
	return CourseDetailResponse{
		Course:           FromDomainCourse(d.Course),
		Instructor:       d.Instructor,
		Outline:          d.Outline,
		EstimatedMinutes: d.EstimatedMinutes,
		FirstLessonID:    d.FirstLessonID,
	}
}

// HomeResponse is the landing page bundle.
type HomeResponse struct {
	LearningPaths   []service.LearningPath `json:"learning_paths"`
	PopularSkills   []service.Skill        `json:"popular_skills"`
	FeaturedCourses []CourseResponse       `json:"featured_courses"`
}

// FromHomePage converts service.HomePage to HomeResponse.
func FromHomePage(h *service.HomePage) HomeResponse {
	return HomeResponse{
		LearningPaths:   h.LearningPaths,
		PopularSkills:   h.PopularSkills,
		FeaturedCourses: FromDomainCourses(h.FeaturedCourses),
	}
}

// ActionResponse reports a successful payment action.
type ActionResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url,omitempty"`
}

// FromPayment builds an ActionResponse from a payment result.
func FromPayment(message string, p *domain.PaymentResult) ActionResponse {
	resp := ActionResponse{Message: message}
	if p != nil {
		resp.TransactionID = p.TransactionID
		resp.RedirectURL = p.RedirectURL
	}
	return resp
}

// SyncResponse represents the response for a catalog import.
type SyncResponse struct {
	Ran      bool   `json:"ran"`
	Episodes int    `json:"episodes"`
	Videos   int    `json:"videos"`
	Series   int    `json:"series"`
	Courses  int    `json:"courses"`
	Users    int    `json:"users"`
	Total    int    `json:"total"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// FromSyncResult converts service.SyncResult to SyncResponse.
func FromSyncResult(r service.SyncResult, ran bool) SyncResponse {
	resp := SyncResponse{
		Ran:      ran,
		Episodes: r.Episodes,
		Videos:   r.Videos,
		Series:   r.Series,
		Courses:  r.Courses,
		Users:    r.Users,
		Total:    r.Total(),
		Duration: r.Duration.String(),
	}
	if r.Error != nil {
		resp.Error = r.Error.Error()
	}
	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
