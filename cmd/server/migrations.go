package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationsTable records applied migrations.
const migrationsTable = "schema_migrations"

// gooseLogger adapts slog to goose's logger interface.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes a goose command against the embedded migrations.
func runMigrations(db *sql.DB, command string, logger *slog.Logger) error {
	switch command {
	case "up", "down", "status", "version":
	default:
		return fmt.Errorf("unsupported migration command %q", command)
	}

	goose.SetBaseFS(postgres.Migrations)
	goose.SetTableName(migrationsTable)
	goose.SetLogger(&gooseLogger{logger: logger.With("component", "migrations")})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	logger.Info("running migrations", "command", command)
	if err := goose.Run(command, db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
