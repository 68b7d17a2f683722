// Package dbtest opens isolated in-memory databases for tests.
package dbtest

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/config"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence/model"
)

// Open returns a migrated in-memory SQLite database private to the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()
	database, err := db.NewSQLiteConnection(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return database.DB()
}
