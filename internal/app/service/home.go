package service

import "learning-platform-service/internal/domain"

// LearningPath is a curated route through the catalog shown on the home page.
type LearningPath struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
}

// Skill is a popular topic shortcut.
type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}

// HomePage is the landing page content.
type HomePage struct {
	LearningPaths   []LearningPath   `json:"learning_paths"`
	PopularSkills   []Skill          `json:"popular_skills"`
	FeaturedCourses []*domain.Course `json:"featured_courses"`
}

// LearningPaths returns the static learning paths.
func LearningPaths() []LearningPath {
	return []LearningPath{
		{
			ID:          "web-dev",
			Title:       "Web Dev Fundamentals",
			Description: "Master HTML, CSS, JavaScript, and React to build modern web apps.",
			Href:        "/paths/web-dev",
		},
		{
			ID:          "ai-basics",
			Title:       "AI Essentials with Python",
			Description: "Understand core AI concepts and implement them using Python libraries.",
			Href:        "/paths/ai-basics",
		},
		{
			ID:          "data-sql",
			Title:       "Data & SQL Bootcamp",
			Description: "Learn to manage and query databases effectively using SQL.",
			Href:        "/paths/data-sql",
		},
	}
}

// PopularSkills returns the static popular skills.
func PopularSkills() []Skill {
	return []Skill{
		{ID: "react", Name: "React", Href: "/browse?skill=react"},
		{ID: "python", Name: "Python", Href: "/browse?skill=python"},
		{ID: "ai-ml", Name: "AI/ML", Href: "/browse?skill=ai-ml"},
		{ID: "sql", Name: "SQL", Href: "/browse?skill=sql"},
		{ID: "nextjs", Name: "Next.js", Href: "/browse?skill=nextjs"},
	}
}
