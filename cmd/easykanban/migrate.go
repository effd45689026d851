package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE:  func(cmd *cobra.Command, args []string) error { return runMigrate("up") },
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback all migrations",
	RunE:  func(cmd *cobra.Command, args []string) error { return runMigrate("down") },
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied migration version",
	RunE:  runMigrateVersion,
}

func init() {
	migrateCmd.AddCommand(migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(direction string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(direction); err != nil {
		return err
	}
	slog.Info("migrations finished", "direction", direction)
	return nil
}

func runMigrateVersion(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	version, dirty, err := db.MigrationVersion()
	if err != nil {
		return err
	}
	cmd.Printf("version %d (dirty: %v)\n", version, dirty)
	return nil
}
