package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/logging"
)

// ErrCredentialsRequired is returned when email or password is blank.
var ErrCredentialsRequired = errors.New("email and password are required")

// AuthService signs staff in and out and resolves their sessions.
type AuthService struct {
	gateway  contracts.AuthGateway
	sessions contracts.SessionRepository
	ttl      time.Duration
	now      func() time.Time
	logger   *logging.Logger
}

// NewAuthService creates the service. ttl bounds sessions whose expiry cannot
// be learned from the login response or the token.
func NewAuthService(gateway contracts.AuthGateway, sessions contracts.SessionRepository, ttl time.Duration) *AuthService {
	return &AuthService{
		gateway:  gateway,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
		logger:   logging.Default().WithComponent("auth_service"),
	}
}

// SignIn exchanges credentials for tokens and stores a new session.
func (s *AuthService) SignIn(ctx context.Context, creds admin.Credentials) (*admin.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, ErrCredentialsRequired
	}

	res, err := s.gateway.Login(ctx, creds)
	if err != nil {
		s.logger.Security("Sign-in rejected", "email", creds.Email, "error", err)
		return nil, err
	}

	now := s.now()
	subject, tokenExpiry := tokenClaims(res.AccessToken)
	session := &admin.Session{
		ID:           uuid.NewString(),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		RoleType:     res.RoleType,
		Subject:      subject,
		CreatedAt:    now,
		ExpiresAt:    sessionExpiry(now, res.ExpiresIn, tokenExpiry, s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Security("Signed in", "session", session.ID, "role_type", session.RoleType, "expires_at", session.ExpiresAt)
	return session, nil
}

// SignOut deletes the session.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Security("Signed out", "session", sessionID)
	return nil
}

// Current returns the live session with id. Expired sessions are deleted.
func (s *AuthService) Current(ctx context.Context, sessionID string) (*admin.Session, error) {
	if sessionID == "" {
		return nil, contracts.ErrNoSession
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, contracts.ErrSessionExpired
	}
	return session, nil
}

// PurgeExpired removes sessions past their expiry.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Database("Purged expired sessions", "count", n)
	}
	return n, nil
}

// tokenClaims reads sub and exp from the access token without verifying it;
// the API verifies its own tokens, the dashboard only needs the expiry.
func tokenClaims(token string) (string, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}
	}
	subject, _ := claims.GetSubject()
	var expiry time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}
	return subject, expiry
}

// sessionExpiry prefers expiresIn, then the token's exp claim, then ttl.
func sessionExpiry(now time.Time, expiresIn int64, tokenExpiry time.Time, ttl time.Duration) time.Time {
	switch {
	case expiresIn > 0:
		return now.Add(time.Duration(expiresIn) * time.Second)
	case !tokenExpiry.IsZero():
		return tokenExpiry
	case ttl > 0:
		return now.Add(ttl)
	default:
		return time.Time{}
	}
}
