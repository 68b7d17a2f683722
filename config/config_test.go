package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5, cfg.RateLimit.LoginAttempts)
	assert.False(t, cfg.InvoiceFeed.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file:ledger.db")
	t.Setenv("INVOICE_FEED_URL", "https://billing.example.com/invoices")
	t.Setenv("INVOICE_FEED_TIMEOUT", "5s")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("RATE_LIMIT_LOGIN_ATTEMPTS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:ledger.db", cfg.Database.URL)
	assert.True(t, cfg.InvoiceFeed.Enabled())
	assert.Equal(t, 5*time.Second, cfg.InvoiceFeed.Timeout)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 5, cfg.RateLimit.LoginAttempts)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "debug mode without secret",
			mutate: func(c *Config) { c.Server.Environment = "debug" },
		},
		{
			name: "release mode without secret",
			mutate: func(c *Config) {
				c.Server.Environment = "release"
				c.JWT.Secret = ""
			},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "DATABASE_DRIVER",
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:   ServerConfig{Environment: "debug"},
				Database: DatabaseConfig{Driver: DriverPostgres, URL: "postgres://localhost/db"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warning"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: ""}).SlogLevel())
}
