package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createCatalogTables creates the catalog tables. Position columns keep the
// fixture order, which the resolver relies on for stable sorting.
func createCatalogTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_catalog",
		Migrate: func(tx *gorm.DB) error {
			statements := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id VARCHAR(100) PRIMARY KEY,
					name VARCHAR(200) NOT NULL,
					avatar_url TEXT,
					role VARCHAR(50),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS contents (
					id VARCHAR(100) NOT NULL,
					kind VARCHAR(20) NOT NULL,
					position INTEGER NOT NULL,
					title VARCHAR(500) NOT NULL,
					description TEXT,
					duration INTEGER DEFAULT 0,
					upload_date TIMESTAMP,
					creator_id VARCHAR(100),
					video_source VARCHAR(50),
					source_id VARCHAR(200),
					parent_kind VARCHAR(20) NOT NULL DEFAULT 'none',
					parent_id VARCHAR(100),
					episode_number INTEGER,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (id, kind)
				)`,
				`CREATE TABLE IF NOT EXISTS series (
					id VARCHAR(100) PRIMARY KEY,
					position INTEGER NOT NULL,
					title VARCHAR(500) NOT NULL,
					episode_ids TEXT[],
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS courses (
					id VARCHAR(100) PRIMARY KEY,
					position INTEGER NOT NULL,
					title VARCHAR(500) NOT NULL,
					description TEXT,
					difficulty_level VARCHAR(20),
					thumbnail_url TEXT,
					instructor_id VARCHAR(100),
					duration INTEGER DEFAULT 0,
					content_ids TEXT[],
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS course_modules (
					course_id VARCHAR(100) NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
					id VARCHAR(100) NOT NULL,
					position INTEGER NOT NULL,
					title VARCHAR(500) NOT NULL,
					sort_order INTEGER NOT NULL,
					PRIMARY KEY (course_id, id)
				)`,
			}
			for _, stmt := range statements {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_contents_position ON contents(position);",
				"CREATE INDEX IF NOT EXISTS idx_contents_parent ON contents(parent_kind, parent_id);",
				"CREATE INDEX IF NOT EXISTS idx_contents_creator_id ON contents(creator_id);",
				"CREATE INDEX IF NOT EXISTS idx_courses_position ON courses(position);",
				"CREATE INDEX IF NOT EXISTS idx_courses_difficulty ON courses(difficulty_level);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			for _, table := range []string{"course_modules", "courses", "series", "contents", "users"} {
				if err := tx.Exec("DROP TABLE IF EXISTS " + table + ";").Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
