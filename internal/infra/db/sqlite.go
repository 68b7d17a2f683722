package db

import (
	"database/sql"

	"github.com/glebarez/sqlite"

	"github.com/slogsolutions/Audit-Management-Platform/config"
)

// NewSQLiteConnection opens a SQLite database through the pure-Go driver.
// Used for local development and tests; cfg.URL is a SQLite DSN such as
// "file:ledger.db" or "file:test?mode=memory&cache=shared".
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	return open(sqlite.Open(cfg.URL), config.DriverSQLite, func(sqlDB *sql.DB) {
		// One writer at a time; a single connection also keeps a shared
		// in-memory database alive for the lifetime of the pool.
		sqlDB.SetMaxOpenConns(1)
	})
}
