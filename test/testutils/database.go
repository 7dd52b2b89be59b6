// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"testing"

	"github.com/mealwise/core/internal/infrastructure/config"
	"github.com/mealwise/core/internal/infrastructure/persistence/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// SetupTestDatabase opens a migrated in-memory SQLite database that is
// closed when the test ends
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        ":memory:",
		LogLevel:    "silent",
		AutoMigrate: true,
	}}

	db, err := database.Open(cfg, zaptest.NewLogger(t))
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}
