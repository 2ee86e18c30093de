package contracts

import (
	"context"
	"time"

	"flightadmin/domain/admin"
)

// TokenSource hands the API client the current bearer token. AccessToken is
// called before every request and must not cache across calls, so a token
// replaced mid-session is picked up by the next request.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	// Clear drops the stored tokens after the API rejected them.
	Clear(ctx context.Context) error
}

// SessionRepository persists signed-in staff sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *admin.Session) error
	Get(ctx context.Context, id string) (*admin.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
