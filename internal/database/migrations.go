package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes creates the lookup indexes used by ownership checks and task listing.
// Existing indexes are left alone, so it is safe to run on every start.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Ownership-scoped project lookups
		{"projects", "idx_projects_user_id", "user_id"},

		// Task listing: newest-first within a project, optionally by status
		{"tasks", "idx_tasks_project_created_at", "project_id, created_at"},
		{"tasks", "idx_tasks_project_completed", "project_id, completed"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
