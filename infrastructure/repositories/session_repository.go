package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"flightadmin/database"
	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
)

// SqliteSessionRepository implements contracts.SessionRepository with read/write separation.
type SqliteSessionRepository struct {
	*BaseRepository
}

// NewSessionRepository creates a session repository over database.
func NewSessionRepository(database *database.Database) contracts.SessionRepository {
	return &SqliteSessionRepository{
		BaseRepository: NewBaseRepository(database),
	}
}

// Create stores a new session.
func (r *SqliteSessionRepository) Create(ctx context.Context, s *admin.Session) error {
	if s.ID == "" {
		return errors.New("session id is required")
	}
	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.WriteDB().ExecContext(ctx, `
		INSERT INTO sessions (id, access_token, refresh_token, role_type, subject, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.AccessToken, s.RefreshToken, s.RoleType, s.Subject,
		r.ToUnix(created), r.ToUnix(s.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get loads a session. Expiry is not checked here.
func (r *SqliteSessionRepository) Get(ctx context.Context, id string) (*admin.Session, error) {
	var (
		s                  admin.Session
		created, expiresAt int64
	)
	err := r.ReadDB().QueryRowContext(ctx, `
		SELECT id, access_token, refresh_token, role_type, subject, created_at, expires_at
		FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.AccessToken, &s.RefreshToken, &s.RoleType, &s.Subject, &created, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	s.CreatedAt = r.FromUnix(created)
	s.ExpiresAt = r.FromUnix(expiresAt)
	return &s, nil
}

// Delete removes a session; deleting a missing session is not an error.
func (r *SqliteSessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.WriteDB().ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry is at or before now.
func (r *SqliteSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.WriteDB().ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at > 0 AND expires_at <= ?", now.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired sessions: %w", err)
	}
	return n, nil
}
