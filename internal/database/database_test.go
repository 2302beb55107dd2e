package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tasks-api/internal/config"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			dialector, err := Dialector(&config.Config{DBDriver: driver, SQLitePath: "test.db"})
			require.NoError(t, err)
			assert.Equal(t, driver, dialector.Name())
		})
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", sqliteDSN("app.db"))
	assert.Equal(t, "file:app.db?cache=shared&_foreign_keys=on", sqliteDSN("file:app.db?cache=shared"))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, LogLevel("silent"))
	assert.Equal(t, logger.Error, LogLevel("ERROR"))
	assert.Equal(t, logger.Info, LogLevel("info"))
	assert.Equal(t, logger.Warn, LogLevel("warn"))
	assert.Equal(t, logger.Warn, LogLevel("verbose"))
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Connect(&config.Config{DBDriver: "sqlite", SQLitePath: "file::memory:", DBLogLevel: "silent"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	for _, name := range []string{"idx_projects_user_id", "idx_tasks_project_created_at", "idx_tasks_project_completed"} {
		table := "tasks"
		if name == "idx_projects_user_id" {
			table = "projects"
		}
		assert.True(t, db.Migrator().HasIndex(table, name), name)
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

