// Package main is the operator CLI for the Expense Ledger store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/slogsolutions/Audit-Management-Platform/config"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/dependency"
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the expense ledger store",
	Long: `ledgerctl runs maintenance tasks against the expense ledger database:
schema migration, category seeding, invoice feed sync and user creation.

Configuration is read from the environment (and a .env file when present),
exactly like the API server.`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCategoriesCmd())
	rootCmd.AddCommand(syncInvoicesCmd())
	rootCmd.AddCommand(createUserCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogging(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg := config.Load()
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	return nil
}

// openStore connects to the configured database. The caller must close it.
func openStore() (*config.Config, *db.Database, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, database, nil
}

// openApp connects to the database and wires the use cases.
func openApp() (*dependency.Injector, func(), error) {
	cfg, database, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = database.Close() }

	injector, err := dependency.NewInjector(cfg, database.DB(), nil)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return injector, closeDB, nil
}
