package database

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newDatabaseCode = errors.WithPrefix("DATABASE")

var (
	ErrFailedToOpenDatabase                = newDatabaseCode().New("failed to open {{.driver}} database")
	ErrUnsupportedDriver                   = newDatabaseCode().New("unsupported database driver {{.driver}}")
	ErrMigrationFailed                     = newDatabaseCode().New("migration {{.id}} failed: {{.reason}}")
	ErrFailedToCreateSchemaMigrationsTable = newDatabaseCode().New("failed to create schema_migrations table")
	ErrFailedToGetAppliedMigrations        = newDatabaseCode().New("failed to get applied migrations")
	ErrFailedToBeginTransaction            = newDatabaseCode().New("failed to begin transaction")
	ErrNoMigrationsToRollback              = newDatabaseCode().New("no migrations to rollback")
	ErrFailedToExecuteQuery                = newDatabaseCode().New("failed to execute query: {{.query}}")
)
