package db

import (
	"database/sql"

	"gorm.io/driver/postgres"

	"github.com/slogsolutions/Audit-Management-Platform/config"
)

// NewPostgresConnection opens the production PostgreSQL store with the
// configured pool limits.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	return open(postgres.Open(cfg.URL), config.DriverPostgres, func(sqlDB *sql.DB) {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	})
}
