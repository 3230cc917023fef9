package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/repository"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrationDB(repository.Migrate)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrationDB(repository.MigrateDown)
			},
		},
	)
	return cmd
}

func withMigrationDB(run func(*sql.DB, *slog.Logger) error) error {
	logger := newLogger(config.Cfg.Log.Level)

	sqlDB, err := sql.Open("postgres", config.Cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return run(sqlDB, logger)
}
