package database

import (
	"context"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type sqlMigrationRunner struct {
	db *sqlx.DB
}

// NewMigrationRunner records applied migrations in schema_migrations, grouped
// in batches so a rollback undoes the most recent run first.
func NewMigrationRunner(db *sqlx.DB) contracts.MigrationRunner {
	return &sqlMigrationRunner{db: db}
}

const migrationTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    id VARCHAR(255) PRIMARY KEY,
    description TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    batch INTEGER NOT NULL
)`

func (r *sqlMigrationRunner) createMigrationTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, migrationTableSQL); err != nil {
		return ErrFailedToCreateSchemaMigrationsTable.WithCause(err)
	}
	return nil
}

func (r *sqlMigrationRunner) Run(ctx context.Context, migrations []contracts.Migration) error {
	if err := r.createMigrationTable(ctx); err != nil {
		return err
	}

	applied, err := r.Status(ctx)
	if err != nil {
		return err
	}

	appliedMap := make(map[string]bool, len(applied))
	for _, a := range applied {
		appliedMap[a.ID] = true
	}

	pending := make([]contracts.Migration, 0, len(migrations))
	for _, migration := range migrations {
		if !appliedMap[migration.ID()] {
			pending = append(pending, migration)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].ID() < pending[j].ID()
	})

	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		batch := nextBatch(applied)
		for _, migration := range pending {
			if err := r.up(ctx, tx, migration, batch); err != nil {
				return ErrMigrationFailed.
					WithDetail("id", migration.ID()).
					WithDetail("reason", err.Error()).
					WithCause(err)
			}
		}
		return nil
	})
}

func (r *sqlMigrationRunner) Rollback(ctx context.Context, steps int, migrations []contracts.Migration) error {
	if err := r.createMigrationTable(ctx); err != nil {
		return err
	}

	applied, err := r.Status(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return ErrNoMigrationsToRollback
	}

	byID := make(map[string]contracts.Migration, len(migrations))
	for _, m := range migrations {
		byID[m.ID()] = m
	}

	sort.Slice(applied, func(i, j int) bool {
		return applied[i].Batch > applied[j].Batch ||
			(applied[i].Batch == applied[j].Batch && applied[i].ID > applied[j].ID)
	})
	if steps <= 0 || steps > len(applied) {
		steps = len(applied)
	}

	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, status := range applied[:steps] {
			if err := r.down(ctx, tx, status.ID, byID[status.ID]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqlMigrationRunner) Status(ctx context.Context) ([]contracts.MigrationStatus, error) {
	if err := r.createMigrationTable(ctx); err != nil {
		return nil, err
	}

	var statuses []contracts.MigrationStatus
	err := r.db.SelectContext(ctx, &statuses,
		"SELECT id, description, applied_at, batch FROM schema_migrations ORDER BY batch, id")
	if err != nil {
		return nil, ErrFailedToGetAppliedMigrations.WithCause(err)
	}
	return statuses, nil
}

func (r *sqlMigrationRunner) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return ErrFailedToBeginTransaction.WithCause(err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *sqlMigrationRunner) up(ctx context.Context, tx *sqlx.Tx, migration contracts.Migration, batch int) error {
	for _, query := range migration.Up() {
		if strings.TrimSpace(query) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return ErrFailedToExecuteQuery.WithDetail("query", query).WithCause(err)
		}
	}

	_, err := tx.ExecContext(ctx,
		tx.Rebind("INSERT INTO schema_migrations (id, description, batch) VALUES (?, ?, ?)"),
		migration.ID(), migration.Description(), batch)
	return err
}

// down runs the down queries when the migration is still known; records of
// migrations no longer shipped are only removed.
func (r *sqlMigrationRunner) down(ctx context.Context, tx *sqlx.Tx, id string, migration contracts.Migration) error {
	if migration != nil {
		for _, query := range migration.Down() {
			trimmed := strings.TrimSpace(query)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return ErrMigrationFailed.
					WithDetail("id", id).
					WithDetail("reason", "rollback query failed: "+err.Error()).
					WithCause(err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM schema_migrations WHERE id = ?"), id); err != nil {
		return ErrMigrationFailed.
			WithDetail("id", id).
			WithDetail("reason", "failed to delete migration record").
			WithCause(err)
	}
	return nil
}

func nextBatch(applied []contracts.MigrationStatus) int {
	maxBatch := 0
	for _, migration := range applied {
		maxBatch = max(maxBatch, migration.Batch)
	}
	return maxBatch + 1
}
