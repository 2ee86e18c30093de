package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/test/mocks"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": sub}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newAuthService(gateway *mocks.MockAuthGateway, sessions *mocks.MockSessionRepository, ttl time.Duration) *AuthService {
	svc := NewAuthService(gateway, sessions, ttl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAuthService_SignIn(t *testing.T) {
	tokenExp := fixedNow.Add(2 * time.Hour)

	tests := []struct {
		name      string
		expiresIn int64
		tokenExp  time.Time
		ttl       time.Duration
		want      time.Time
	}{
		{"expiresIn wins", 600, tokenExp, time.Hour, fixedNow.Add(10 * time.Minute)},
		{"token exp next", 0, tokenExp, time.Hour, tokenExp},
		{"ttl fallback", 0, time.Time{}, time.Hour, fixedNow.Add(time.Hour)},
		{"no expiry known", 0, time.Time{}, 0, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &mocks.MockAuthGateway{}
			sessions := &mocks.MockSessionRepository{}
			creds := admin.Credentials{Email: "admin@example.com", Password: "pw"}
			access := signedToken(t, "staff-1", tt.tokenExp)

			gateway.On("Login", mock.Anything, creds).Return(&admin.LoginResult{
				AccessToken:  access,
				RefreshToken: "refresh",
				RoleType:     "ADMIN",
				ExpiresIn:    tt.expiresIn,
			}, nil)
			sessions.On("Create", mock.Anything, mock.AnythingOfType("*admin.Session")).Return(nil)

			session, err := newAuthService(gateway, sessions, tt.ttl).SignIn(context.Background(), creds)

			require.NoError(t, err)
			assert.NotEmpty(t, session.ID)
			assert.Equal(t, access, session.AccessToken)
			assert.Equal(t, "refresh", session.RefreshToken)
			assert.Equal(t, "staff-1", session.Subject)
			assert.Equal(t, "ADMIN", session.RoleType)
			assert.True(t, tt.want.Equal(session.ExpiresAt), "expires at %v, want %v", session.ExpiresAt, tt.want)
			gateway.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignInRequiresCredentials(t *testing.T) {
	gateway := &mocks.MockAuthGateway{}
	sessions := &mocks.MockSessionRepository{}
	svc := newAuthService(gateway, sessions, time.Hour)

	_, err := svc.SignIn(context.Background(), admin.Credentials{Email: "  ", Password: "pw"})
	assert.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.SignIn(context.Background(), admin.Credentials{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrCredentialsRequired)

	gateway.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthService_SignInRejected(t *testing.T) {
	gateway := &mocks.MockAuthGateway{}
	sessions := &mocks.MockSessionRepository{}
	rejected := errors.New("invalid credentials")
	gateway.On("Login", mock.Anything, mock.Anything).Return(nil, rejected)

	_, err := newAuthService(gateway, sessions, time.Hour).
		SignIn(context.Background(), admin.Credentials{Email: "a@b.c", Password: "bad"})

	assert.ErrorIs(t, err, rejected)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Current(t *testing.T) {
	sessions := &mocks.MockSessionRepository{}
	svc := newAuthService(&mocks.MockAuthGateway{}, sessions, time.Hour)

	live := &admin.Session{ID: "live", ExpiresAt: fixedNow.Add(time.Minute)}
	stale := &admin.Session{ID: "stale", ExpiresAt: fixedNow}
	sessions.On("Get", mock.Anything, "live").Return(live, nil)
	sessions.On("Get", mock.Anything, "stale").Return(stale, nil)
	sessions.On("Delete", mock.Anything, "stale").Return(nil)

	got, err := svc.Current(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, live, got)

	_, err = svc.Current(context.Background(), "stale")
	assert.ErrorIs(t, err, contracts.ErrSessionExpired)

	_, err = svc.Current(context.Background(), "")
	assert.ErrorIs(t, err, contracts.ErrNoSession)

	sessions.AssertExpectations(t)
}

func TestAuthService_PurgeExpired(t *testing.T) {
	sessions := &mocks.MockSessionRepository{}
	sessions.On("DeleteExpired", mock.Anything, fixedNow).Return(int64(3), nil)

	n, err := newAuthService(&mocks.MockAuthGateway{}, sessions, time.Hour).PurgeExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestTokenClaims_Malformed(t *testing.T) {
	sub, exp := tokenClaims("not-a-jwt")
	assert.Empty(t, sub)
	assert.True(t, exp.IsZero())
}

func TestSessionTokenSource(t *testing.T) {
	sessions := &mocks.MockSessionRepository{}
	src := NewSessionTokenSource(sessions)
	src.now = func() time.Time { return fixedNow }

	sessions.On("Get", mock.Anything, "s1").Return(&admin.Session{ID: "s1", AccessToken: "tok-1"}, nil).Once()
	sessions.On("Get", mock.Anything, "s1").Return(&admin.Session{ID: "s1", AccessToken: "tok-2"}, nil).Once()
	sessions.On("Get", mock.Anything, "old").Return(&admin.Session{ID: "old", AccessToken: "x", ExpiresAt: fixedNow.Add(-time.Second)}, nil)
	sessions.On("Delete", mock.Anything, "old").Return(nil)
	sessions.On("Get", mock.Anything, "gone").Return(nil, contracts.ErrSessionNotFound)

	ctx := WithSessionID(context.Background(), "s1")

	// Each call reads the repository so a refreshed token is picked up.
	tok, err := src.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	tok, err = src.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)

	_, err = src.AccessToken(WithSessionID(context.Background(), "old"))
	assert.ErrorIs(t, err, contracts.ErrSessionExpired)

	_, err = src.AccessToken(WithSessionID(context.Background(), "gone"))
	assert.ErrorIs(t, err, contracts.ErrSessionNotFound)

	_, err = src.AccessToken(context.Background())
	assert.ErrorIs(t, err, contracts.ErrNoSession)

	assert.NoError(t, src.Clear(context.Background()))
	sessions.AssertExpectations(t)
}
