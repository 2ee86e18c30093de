package repositories

import (
	"context"
	"database/sql"
	"time"

	"flightadmin/database"
)

// BaseRepository provides database access and the conversions shared by all repositories.
type BaseRepository struct {
	db *database.Database
}

// NewBaseRepository creates a new BaseRepository with database access
func NewBaseRepository(database *database.Database) *BaseRepository {
	return &BaseRepository{
		db: database,
	}
}

// ReadDB returns the pooled connection for SELECT statements
func (b *BaseRepository) ReadDB() *sql.DB {
	return b.db.ReadDB()
}

// WriteDB returns the serialized connection for INSERT/UPDATE/DELETE statements
func (b *BaseRepository) WriteDB() *sql.DB {
	return b.db.WriteDB()
}

// WithTx executes a function within a write transaction
func (b *BaseRepository) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return b.db.WithTx(ctx, fn)
}

// ToUnix stores a time as unix seconds; the zero time is stored as 0.
func (b *BaseRepository) ToUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// FromUnix is the inverse of ToUnix.
func (b *BaseRepository) FromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}
