package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
)

// OutlineState describes which branch of the course outline applies.
type OutlineState string

const (
	// OutlineModules lists modules sorted by order.
	OutlineModules OutlineState = "modules"
	// OutlineLessonsOnly is a course with content ids but no modules.
	// The listing is intentionally empty until a lesson layout is agreed on.
	OutlineLessonsOnly OutlineState = "lessons_only"
	// OutlinePending is a course with neither modules nor content.
	OutlinePending OutlineState = "pending"
)

// OutlineEntry is a module row of a course outline.
type OutlineEntry struct {
	ModuleID string `json:"module_id"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
	Label    string `json:"label"`               // "01", "02", ...
	LessonID string `json:"lesson_id,omitempty"` // contentIds at the same position
}

// Outline is the display projection of a course's content.
type Outline struct {
	State   OutlineState   `json:"state"`
	Entries []OutlineEntry `json:"entries"`
}

// BuildOutline sorts a copy of the course modules by order and pairs each
// module positionally with the course content ids.
func BuildOutline(course *Course) Outline {
	if len(course.Modules) == 0 {
		if len(course.ContentIDs) > 0 {
			return Outline{State: OutlineLessonsOnly, Entries: []OutlineEntry{}}
		}
		return Outline{State: OutlinePending, Entries: []OutlineEntry{}}
	}

	modules := make([]Module, len(course.Modules))
	copy(modules, course.Modules)
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].Order < modules[j].Order
	})

	entries := lo.Map(modules, func(m Module, i int) OutlineEntry {
		entry := OutlineEntry{
			ModuleID: m.ID,
			Title:    m.Title,
			Order:    m.Order,
			Label:    fmt.Sprintf("%02d", i+1),
		}
		if i < len(course.ContentIDs) {
			entry.LessonID = course.ContentIDs[i]
		}
		return entry
	})

	return Outline{State: OutlineModules, Entries: entries}
}

// EstimatedMinutes is a rough total duration: lessons × average lesson minutes.
func EstimatedMinutes(course *Course) int {
	lessons := len(course.ContentIDs)
	perLesson := float64(course.Duration) / float64(max(lessons, 1)) / 60

	return int(math.Round(float64(lessons) * perLesson))
}

// FirstLessonID returns the id of the first lesson, or "" for an empty course.
func FirstLessonID(course *Course) string {
	if len(course.ContentIDs) == 0 {
		return ""
	}
	return course.ContentIDs[0]
}

// CourseDetail is everything the course page shows.
type CourseDetail struct {
	Course           *Course `json:"course"`
	Instructor       *User   `json:"instructor"`
	Outline          Outline `json:"outline"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	FirstLessonID    string  `json:"first_lesson_id,omitempty"`
}

// NewCourseDetail builds the course page projection. instructor may be nil.
func NewCourseDetail(course *Course, instructor *User) *CourseDetail {
	return &CourseDetail{
		Course:           course,
		Instructor:       instructor,
		Outline:          BuildOutline(course),
		EstimatedMinutes: EstimatedMinutes(course),
		FirstLessonID:    FirstLessonID(course),
	}
}

// BeginnerCourses returns the first limit beginner courses in catalog order.
func BeginnerCourses(courses []*Course, limit int) []*Course {
	beginners := lo.Filter(courses, func(c *Course, _ int) bool {
		return c.IsBeginner()
	})
	if limit > 0 && len(beginners) > limit {
		beginners = beginners[:limit]
	}

	return beginners
}
