package database

import (
	"fmt"

	"github.com/yukikurage/family-graph-api/internal/logger"
	"gorm.io/gorm"
)

// AddIndexes adds the indexes the owner-scoped queries rely on that are not
// declared on the models themselves
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Relationship listing sorts by recency
		{"relationships", "idx_relationships_created_at", "created_at"},

		// Event listing filters by owner and sorts by date
		{"events", "idx_events_user_date", "user_id, event_date"},

		// Person listing sorts by name
		{"people", "idx_people_names", "family_name, given_name"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logger.Log.Debugw("Index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Log.Infow("Created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}

// MigrateDatabase runs the migrations that AutoMigrate does not cover
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
