package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightadmin/database"
	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/logging"
)

func newSessionRepo(t *testing.T) contracts.SessionRepository {
	t.Helper()
	cfg := database.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "sessions.db")
	db, err := database.New(cfg, logging.NewLogger(&logging.Config{Output: "discard"}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionRepository(db)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour).Truncate(time.Second).UTC()

	err := repo.Create(ctx, &admin.Session{
		ID:           "s1",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		RoleType:     "ADMIN",
		Subject:      "u1",
		ExpiresAt:    expires,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "access-1", got.AccessToken)
	assert.Equal(t, "ADMIN", got.RoleType)
	assert.True(t, expires.Equal(got.ExpiresAt))
	assert.False(t, got.CreatedAt.IsZero())

	assert.Equal(t, "refresh-1", got.RefreshToken)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, contracts.ErrSessionNotFound)

	assert.NoError(t, repo.Delete(ctx, "s1"))
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &admin.Session{ID: "old", AccessToken: "a", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Create(ctx, &admin.Session{ID: "live", AccessToken: "b", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &admin.Session{ID: "open", AccessToken: "c"}))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Get(ctx, "live")
	assert.NoError(t, err)
	_, err = repo.Get(ctx, "open")
	assert.NoError(t, err)
}

func TestSessionRepository_RequiresID(t *testing.T) {
	repo := newSessionRepo(t)
	assert.Error(t, repo.Create(context.Background(), &admin.Session{AccessToken: "a"}))
}
