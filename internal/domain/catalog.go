package domain

// DifficultyLevel represents the audience level of a course.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// Series is an ordered collection of episodes.
// EpisodeIDs define membership; display order is re-derived from episode numbers.
type Series struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	EpisodeIDs []string `json:"episode_ids"`
}

// Module is a titled section of a course, displayed by Order.
type Module struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// Course is a structured learning path over content items.
type Course struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level"`
	ThumbnailURL    string          `json:"thumbnail_url,omitempty"`
	InstructorID    string          `json:"instructor_id,omitempty"`
	Duration        int             `json:"duration"` // seconds, whole course
	ContentIDs      []string        `json:"content_ids"`
	Modules         []Module        `json:"modules,omitempty"`
}

// IsBeginner returns true for beginner level courses.
func (c *Course) IsBeginner() bool {
	return c.DifficultyLevel == DifficultyBeginner
}

// User is a creator or instructor. It is only ever referenced, never owned.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role,omitempty"`
}
