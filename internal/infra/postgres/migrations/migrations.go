// Package migrations holds the catalog schema migrations.
package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// options keeps catalog migrations in their own bookkeeping table and
// applies each one inside a transaction.
var options = &gormigrate.Options{
	TableName:      "catalog_migrations",
	IDColumnName:   "id",
	IDColumnSize:   255,
	UseTransaction: true,
}

func catalogMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		createCatalogTables(),
	}
}

// Run applies pending catalog migrations.
func Run(db *gorm.DB) error {
	if err := gormigrate.New(db, options, catalogMigrations()).Migrate(); err != nil {
		return fmt.Errorf("migrating catalog schema: %w", err)
	}

	return nil
}

// Latest returns the id of the newest known migration.
func Latest() string {
	all := catalogMigrations()
	return all[len(all)-1].ID
}
