package contracts

import (
	"context"
	"time"
)

type Migration interface {
	ID() string
	Description() string
	Up() []string
	Down() []string
}

type MigrationStatus struct {
	ID          string    `db:"id"`
	Description string    `db:"description"`
	AppliedAt   time.Time `db:"applied_at"`
	Batch       int       `db:"batch"`
}

type MigrationRunner interface {
	Run(ctx context.Context, migrations []Migration) error
	Rollback(ctx context.Context, steps int, migrations []Migration) error
	Status(ctx context.Context) ([]MigrationStatus, error)
}

type MigrationsProvider interface {
	Migrations() []Migration
}
