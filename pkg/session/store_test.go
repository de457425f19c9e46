package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/database"
)

// exerciseStore checks the behaviour shared by every driver. Writes go
// through writer while watcher plays the part of another process.
func exerciseStore(t *testing.T, writer, watcher contracts.KeyValueStore) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, ok, err := writer.Get(ctx, contracts.SessionTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, writer.Set(ctx, contracts.SessionTokenKey, "tok-1"))
	v, ok, err := watcher.Get(ctx, contracts.SessionTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", v)

	require.NoError(t, writer.Set(ctx, contracts.SessionTokenKey, "tok-2"))
	v, _, _ = watcher.Get(ctx, contracts.SessionTokenKey)
	assert.Equal(t, "tok-2", v)

	watchCtx, stop := context.WithCancel(ctx)
	changes, err := watcher.Watch(watchCtx)
	require.NoError(t, err)

	require.NoError(t, writer.Set(ctx, contracts.SessionUserKey, `{"id":"1"}`))
	assert.Equal(t,
		[]contracts.KeyValueChange{{Key: contracts.SessionUserKey, Value: `{"id":"1"}`}},
		collect(t, changes, 1))

	require.NoError(t, writer.Delete(ctx, contracts.SessionTokenKey, contracts.SessionUserKey))
	assert.ElementsMatch(t, []contracts.KeyValueChange{
		{Key: contracts.SessionTokenKey, Deleted: true},
		{Key: contracts.SessionUserKey, Deleted: true},
	}, collect(t, changes, 2))

	_, ok, err = watcher.Get(ctx, contracts.SessionUserKey)
	require.NoError(t, err)
	assert.False(t, ok)

	stop()
	for range changes {
	}
}

func collect(t *testing.T, changes <-chan contracts.KeyValueChange, n int) []contracts.KeyValueChange {
	t.Helper()
	var got []contracts.KeyValueChange
	timeout := time.After(3 * time.Second)
	for len(got) < n {
		select {
		case c, ok := <-changes:
			if !ok {
				t.Fatalf("watch closed after %d changes", len(got))
			}
			got = append(got, c)
		case <-timeout:
			t.Fatalf("timed out after %d of %d changes: %v", len(got), n, got)
		}
	}
	return got
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store, store)

	require.NoError(t, store.Close())
	_, _, err := store.Get(context.Background(), contracts.SessionTokenKey)
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, store.Set(context.Background(), "k", "v"), ErrStoreClosed)
}

func TestMemoryStore_CloseEndsWatchers(t *testing.T) {
	store := NewMemoryStore()
	changes, err := store.Watch(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Close())
	_, open := <-changes
	assert.False(t, open)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	writer := NewFileStore(path, 10*time.Millisecond)
	watcher := NewFileStore(path, 10*time.Millisecond)
	defer func() { _ = watcher.Close() }()

	exerciseStore(t, writer, watcher)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	store := NewFileStore(path, time.Second)
	_, _, err := store.Get(context.Background(), contracts.SessionTokenKey)
	assert.ErrorIs(t, err, ErrStoreRead)
}

func TestFileStore_CloseStopsWatch(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"), 5*time.Millisecond)
	changes, err := store.Watch(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Close())
	select {
	case _, open := <-changes:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
	assert.ErrorIs(t, store.Set(context.Background(), "k", "v"), ErrStoreClosed)
}

func TestRedisStore(t *testing.T) {
	client := newMockRedis()
	writer := NewRedisStore(client, "test:", "test:changes")
	watcher := NewRedisStore(client, "test:", "test:changes")
	watcher.block = 20 * time.Millisecond

	exerciseStore(t, writer, watcher)

	client.mu.Lock()
	_, raw := client.values["test:"+contracts.SessionTokenKey]
	client.mu.Unlock()
	assert.False(t, raw, "keys must be removed under the prefix")
}

func TestRedisStore_WatchSkipsHistory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := newMockRedis()
	store := NewRedisStore(client, "p:", "s")
	store.block = 10 * time.Millisecond
	require.NoError(t, store.Set(ctx, "old", "1"))

	changes, err := store.Watch(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "new", "2"))

	got := collect(t, changes, 1)
	assert.Equal(t, contracts.KeyValueChange{Key: "new", Value: "2"}, got[0])
}

func TestRedisStore_ReadError(t *testing.T) {
	client := newMockRedis()
	client.failGet = errors.New("connection refused")
	store := NewRedisStore(client, "p:", "s")

	_, _, err := store.Get(context.Background(), contracts.SessionTokenKey)
	assert.ErrorIs(t, err, ErrStoreRead)
}

func TestRedisStore_CloseEndsWatch(t *testing.T) {
	client := newMockRedis()
	store := NewRedisStore(client, "p:", "s")
	store.block = 10 * time.Millisecond

	changes, err := store.Watch(context.Background())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	select {
	case _, open := <-changes:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after close")
	}
}

func openSessionDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.NewMigrationRunner(db).Run(context.Background(), Migrations()))
	return db
}

func TestSQLStore(t *testing.T) {
	db := openSessionDB(t)
	writer := NewSQLStore(db, 10*time.Millisecond)
	watcher := NewSQLStore(db, 10*time.Millisecond)

	exerciseStore(t, writer, watcher)

	var tombstones int
	require.NoError(t, db.Get(&tombstones, "SELECT COUNT(*) FROM session_values WHERE deleted = 1"))
	assert.Equal(t, 2, tombstones)

	require.NoError(t, writer.Set(context.Background(), contracts.SessionTokenKey, "again"))
	v, ok, err := watcher.Get(context.Background(), contracts.SessionTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "again", v)
}

func TestSQLStore_WriteError(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = raw.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE session_values").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	store := NewSQLStore(sqlx.NewDb(raw, "sqlmock"), time.Second)
	err = store.Set(context.Background(), contracts.SessionTokenKey, "tok")

	assert.ErrorIs(t, err, ErrStoreWrite)
	assert.NoError(t, mock.ExpectationsWereMet())
}
