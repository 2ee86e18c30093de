package application

import (
	"context"
	"time"

	"flightadmin/domain/contracts"
)

type sessionIDKey struct{}

// WithSessionID returns ctx carrying the session id of the current request.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext returns the session id stored by WithSessionID.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok && id != ""
}

// SessionTokenSource serves the access token of the request's session straight
// from the session repository on every call.
type SessionTokenSource struct {
	sessions contracts.SessionRepository
	now      func() time.Time
}

// NewSessionTokenSource creates a token source over sessions.
func NewSessionTokenSource(sessions contracts.SessionRepository) *SessionTokenSource {
	return &SessionTokenSource{sessions: sessions, now: time.Now}
}

// AccessToken returns the current token. An expired session is deleted and
// reported as contracts.ErrSessionExpired.
func (s *SessionTokenSource) AccessToken(ctx context.Context) (string, error) {
	id, ok := SessionIDFromContext(ctx)
	if !ok {
		return "", contracts.ErrNoSession
	}
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, id)
		return "", contracts.ErrSessionExpired
	}
	return session.AccessToken, nil
}

// Clear deletes the request's session. Without a session it does nothing.
func (s *SessionTokenSource) Clear(ctx context.Context) error {
	id, ok := SessionIDFromContext(ctx)
	if !ok {
		return nil
	}
	return s.sessions.Delete(ctx, id)
}
