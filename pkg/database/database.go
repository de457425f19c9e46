package database

import (
	"context"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type dbConfig struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	pingTimeout     time.Duration
	retryAttempts   int
	retryDelay      time.Duration
}

type Option func(*dbConfig)

func WithConnectionPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(config *dbConfig) {
		config.maxOpenConns = maxOpen
		config.maxIdleConns = maxIdle
		config.connMaxLifetime = maxLifetime
	}
}

func WithPingTimeout(timeout time.Duration) Option {
	return func(config *dbConfig) {
		config.pingTimeout = timeout
	}
}

func WithRetry(attempts int, delay time.Duration) Option {
	return func(config *dbConfig) {
		config.retryAttempts = attempts
		config.retryDelay = delay
	}
}

// Database opens its connection on first use, so registering the module
// costs nothing when no component needs SQL.
type Database struct {
	driver string
	dsn    string
	config dbConfig

	mu   sync.Mutex
	db   *sqlx.DB
	open func(driver, dsn string) (*sqlx.DB, error)
}

func New(driver, dsn string, options ...Option) (*Database, error) {
	name, err := DriverName(driver)
	if err != nil {
		return nil, err
	}

	config := dbConfig{
		maxOpenConns:    4,
		maxIdleConns:    2,
		connMaxLifetime: time.Hour,
		pingTimeout:     5 * time.Second,
		retryAttempts:   3,
		retryDelay:      time.Second,
	}
	for _, option := range options {
		option(&config)
	}

	return &Database{driver: name, dsn: dsn, config: config, open: sqlx.Open}, nil
}

// NewFromDB wraps an already opened connection, mostly for tests.
func NewFromDB(db *sqlx.DB) *Database {
	return &Database{driver: db.DriverName(), db: db}
}

// DriverName maps configuration aliases to registered database/sql drivers.
func DriverName(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "mysql", "mariadb":
		return "mysql", nil
	case "postgres", "postgresql", "pgsql":
		return "postgres", nil
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	default:
		return "", ErrUnsupportedDriver.WithDetail("driver", driver)
	}
}

func (d *Database) Driver() string {
	return d.driver
}

func (d *Database) Connect(ctx context.Context) (*sqlx.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.db, nil
	}

	var lastErr error
	for attempt := 0; attempt <= d.config.retryAttempts; attempt++ {
		db, err := d.open(d.driver, d.dsn)
		if err == nil {
			db.SetMaxOpenConns(d.config.maxOpenConns)
			db.SetMaxIdleConns(d.config.maxIdleConns)
			db.SetConnMaxLifetime(d.config.connMaxLifetime)

			pingCtx, cancel := context.WithTimeout(ctx, d.config.pingTimeout)
			err = db.PingContext(pingCtx)
			cancel()

			if err == nil {
				d.db = db
				return db, nil
			}
			_ = db.Close()
		}
		lastErr = err

		if attempt < d.config.retryAttempts {
			select {
			case <-ctx.Done():
				return nil, ErrFailedToOpenDatabase.WithDetail("driver", d.driver).WithCause(ctx.Err())
			case <-time.After(d.config.retryDelay):
			}
		}
	}

	return nil, ErrFailedToOpenDatabase.WithDetail("driver", d.driver).WithCause(lastErr)
}

func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}
