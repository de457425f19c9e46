package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/database"
)

const sessionTable = "session_values"

// Migrations creates the table used by SQLStore.
func Migrations() []contracts.Migration {
	return []contracts.Migration{
		database.CreateMigration("2024_01_01_000001", "create session values table").
			CreateTable(sessionTable,
				"name VARCHAR(64) NOT NULL PRIMARY KEY",
				"value TEXT NOT NULL",
				"deleted SMALLINT NOT NULL DEFAULT 0",
				"updated_at BIGINT NOT NULL",
			).
			CreateIndex("idx_session_values_updated_at", sessionTable, "updated_at").
			Build(),
	}
}

type sqlRow struct {
	Name      string `db:"name"`
	Value     string `db:"value"`
	Deleted   bool   `db:"deleted"`
	UpdatedAt int64  `db:"updated_at"`
}

// SQLStore keeps values in session_values. Deletions leave a tombstone so
// polling watchers of other processes see them.
type SQLStore struct {
	db       *sqlx.DB
	interval time.Duration
	now      func() time.Time
}

var _ contracts.KeyValueStore = (*SQLStore)(nil)

func NewSQLStore(db *sqlx.DB, interval time.Duration) *SQLStore {
	if interval <= 0 {
		interval = time.Second
	}
	return &SQLStore{db: db, interval: interval, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		s.db.Rebind("SELECT value FROM "+sessionTable+" WHERE name = ? AND deleted = 0"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ErrStoreRead.WithDetail("key", key).WithCause(err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		stamp := s.now().UnixNano()
		res, err := tx.ExecContext(ctx,
			tx.Rebind("UPDATE "+sessionTable+" SET value = ?, deleted = 0, updated_at = ? WHERE name = ?"),
			value, stamp, key)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil || n > 0 {
			return err
		}
		_, err = tx.ExecContext(ctx,
			tx.Rebind("INSERT INTO "+sessionTable+" (name, value, deleted, updated_at) VALUES (?, ?, 0, ?)"),
			key, value, stamp)
		return err
	})
	if err != nil {
		return ErrStoreWrite.WithDetail("key", key).WithCause(err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		"UPDATE "+sessionTable+" SET value = '', deleted = 1, updated_at = ? WHERE name IN (?) AND deleted = 0",
		s.now().UnixNano(), keys)
	if err == nil {
		_, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	}
	if err != nil {
		return ErrStoreWrite.WithDetail("key", keys[0]).WithCause(err)
	}
	return nil
}

func (s *SQLStore) Watch(ctx context.Context) (<-chan contracts.KeyValueChange, error) {
	var cursor sql.NullInt64
	if err := s.db.GetContext(ctx, &cursor, "SELECT MAX(updated_at) FROM "+sessionTable); err != nil {
		return nil, ErrStoreRead.WithDetail("key", "*").WithCause(err)
	}

	ch := make(chan contracts.KeyValueChange, 16)
	go s.poll(ctx, cursor.Int64, ch)
	return ch, nil
}

func (s *SQLStore) poll(ctx context.Context, cursor int64, ch chan<- contracts.KeyValueChange) {
	defer close(ch)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		var rows []sqlRow
		err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
			"SELECT name, value, deleted, updated_at FROM "+sessionTable+" WHERE updated_at > ? ORDER BY updated_at, name"),
			cursor)
		if err != nil {
			continue
		}

		for _, row := range rows {
			cursor = max(cursor, row.UpdatedAt)
			select {
			case ch <- contracts.KeyValueChange{Key: row.Name, Value: row.Value, Deleted: row.Deleted}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close is a no-op: the connection belongs to the database module.
func (s *SQLStore) Close() error {
	return nil
}
