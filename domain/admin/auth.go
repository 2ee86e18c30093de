package admin

import "time"

// Credentials for the password sign-in endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the data returned by /public/auth/login/credential.
type LoginResult struct {
	TokenType    string `json:"tokenType"`
	RoleType     string `json:"roleType"`
	ExpiresIn    int64  `json:"expiresIn"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is a signed-in staff session persisted by the dashboard.
type Session struct {
	ID           string
	AccessToken  string
	RefreshToken string
	RoleType     string
	Subject      string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
