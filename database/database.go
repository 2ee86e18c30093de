// Package database owns the sqlite file that backs staff sessions. Reads go
// through a pooled connection set; writes go through a single connection so
// sqlite never sees concurrent writers.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"flightadmin/logging"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path            string        `env:"DB_PATH" default:"./flightadmin.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" default:"15m"`
	BusyTimeoutMs   int           `env:"DB_BUSY_TIMEOUT_MS" default:"5000"`
	EnableWAL       bool          `env:"DB_ENABLE_WAL" default:"true"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Path:            "./flightadmin.db",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 15 * time.Minute,
		BusyTimeoutMs:   5000,
		EnableWAL:       true,
	}
}

// Database wraps the read pool and the serialized write connection.
type Database struct {
	readDB  *sql.DB // pool for reads
	writeDB *sql.DB // single connection for writes
	config  Config
	logger  *logging.Logger
}

// New opens both connections, applies pragmas and runs pending migrations.
func New(config Config, logger *logging.Logger) (*Database, error) {
	if logger == nil {
		logger = logging.Default()
	}
	dsn := buildDSN(config)

	logger.Database("Opening database connections",
		"path", config.Path,
		"read_max_open_conns", config.MaxOpenConns,
		"write_max_open_conns", 1)

	readDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open read database: %w", err)
	}
	readDB.SetMaxOpenConns(config.MaxOpenConns)
	readDB.SetMaxIdleConns(config.MaxIdleConns)
	readDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	readDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	writeDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		readDB.Close()
		return nil, fmt.Errorf("failed to open write database: %w", err)
	}
	writeDB.SetMaxOpenConns(1)
	writeDB.SetMaxIdleConns(1)
	writeDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	writeDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	database := &Database{
		readDB:  readDB,
		writeDB: writeDB,
		config:  config,
		logger:  logger,
	}

	// Migrations run on the write connection first so the WAL switch and
	// schema exist before any read connection is handed out.
	if err := database.runMigrations(context.Background()); err != nil {
		readDB.Close()
		writeDB.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := database.ping(context.Background()); err != nil {
		readDB.Close()
		writeDB.Close()
		return nil, err
	}

	logger.Database("Database initialized successfully",
		"path", config.Path,
		"wal_mode", config.EnableWAL)

	return database, nil
}

// buildDSN constructs the modernc sqlite DSN. Pragmas are applied by the
// driver on every new connection.
func buildDSN(config Config) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", config.BusyTimeoutMs))
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "synchronous(NORMAL)")
	if config.EnableWAL {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	params.Set("_txlock", "immediate")
	return "file:" + config.Path + "?" + params.Encode()
}

func (d *Database) ping(ctx context.Context) error {
	if err := d.readDB.PingContext(ctx); err != nil {
		return fmt.Errorf("read database ping failed: %w", err)
	}
	if err := d.writeDB.PingContext(ctx); err != nil {
		return fmt.Errorf("write database ping failed: %w", err)
	}
	return nil
}

// ReadDB returns the read connection pool.
func (d *Database) ReadDB() *sql.DB {
	return d.readDB
}

// WriteDB returns the serialized write connection.
func (d *Database) WriteDB() *sql.DB {
	return d.writeDB
}

// Close checkpoints the WAL and closes both connections.
func (d *Database) Close() error {
	d.logger.Database("Closing database connections")

	if d.config.EnableWAL {
		if _, err := d.writeDB.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			d.logger.Warn("failed to checkpoint WAL", "error", err)
		}
	}

	var errs []error
	if err := d.readDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("read connection: %w", err))
	}
	if err := d.writeDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("write connection: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to close connections: %v", errs)
	}
	return nil
}

// Health checks connectivity and returns pool statistics for both connections.
func (d *Database) Health(ctx context.Context) (map[string]any, error) {
	if err := d.ping(ctx); err != nil {
		return nil, err
	}
	return map[string]any{
		"read_pool":  poolStats(d.readDB.Stats(), d.config.MaxOpenConns),
		"write_pool": poolStats(d.writeDB.Stats(), 1),
	}, nil
}

func poolStats(s sql.DBStats, maxOpen int) map[string]any {
	return map[string]any{
		"open_connections": s.OpenConnections,
		"in_use":           s.InUse,
		"idle":             s.Idle,
		"wait_count":       s.WaitCount,
		"wait_duration":    s.WaitDuration.String(),
		"max_open_conns":   maxOpen,
	}
}

// WithTx runs fn inside a transaction on the write connection.
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			d.logger.Error("Failed to rollback transaction", "error", rollbackErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
