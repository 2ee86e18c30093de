package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/infrastructure/apiclient"
)

type sessionKey struct{}

// CurrentSession returns the signed-in session of the request, or nil.
func CurrentSession(ctx context.Context) *admin.Session {
	s, _ := ctx.Value(sessionKey{}).(*admin.Session)
	return s
}

// SessionManager ties the session cookie to the stored session and to the
// session's listing screens.
type SessionManager struct {
	auth       *application.AuthService
	screens    *application.ScreenRegistry
	cookieName string
	secure     bool
}

// NewSessionManager creates a session manager.
func NewSessionManager(auth *application.AuthService, screens *application.ScreenRegistry, cookieName string, secure bool) *SessionManager {
	return &SessionManager{auth: auth, screens: screens, cookieName: cookieName, secure: secure}
}

// Load resolves the session cookie. A cookie whose session is gone or
// expired is cleared.
func (m *SessionManager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.auth.Current(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, contracts.ErrSessionNotFound) && !errors.Is(err, contracts.ErrSessionExpired) {
				webLogger().WithContext(r.Context()).Error("Session lookup failed", "error", err)
			}
			m.screens.Drop(cookie.Value)
			m.clearCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := application.WithSessionID(r.Context(), session.ID)
		ctx = context.WithValue(ctx, sessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession sends visitors without a session to the sign-in page,
// remembering where they were going.
func (m *SessionManager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentSession(r.Context()) == nil {
			Redirect(w, r, signInTarget(r))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectIfSignedIn keeps signed-in users off the sign-in page.
func (m *SessionManager) RedirectIfSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentSession(r.Context()) != nil {
			Redirect(w, r, "/home")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start sets the cookie of a new session.
func (m *SessionManager) Start(w http.ResponseWriter, session *admin.Session) {
	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !session.ExpiresAt.IsZero() {
		cookie.Expires = session.ExpiresAt
	}
	http.SetCookie(w, cookie)
}

// End signs the request's session out and forgets its screens.
func (m *SessionManager) End(w http.ResponseWriter, r *http.Request) {
	if s := CurrentSession(r.Context()); s != nil {
		if err := m.auth.SignOut(r.Context(), s.ID); err != nil {
			webLogger().WithContext(r.Context()).Error("Sign-out failed", "error", err)
		}
		m.screens.Drop(s.ID)
	}
	m.clearCookie(w)
}

// Screens returns the listing screens of the request's session.
func (m *SessionManager) Screens(r *http.Request) *application.ScreenSet {
	id, _ := application.SessionIDFromContext(r.Context())
	return m.screens.For(id)
}

// HandleAuthFailure ends the session and sends the browser to sign in when
// err means the session is no longer usable. It reports whether it did.
func (m *SessionManager) HandleAuthFailure(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apiclient.IsAuth(err) &&
		!errors.Is(err, contracts.ErrSessionExpired) &&
		!errors.Is(err, contracts.ErrSessionNotFound) &&
		!errors.Is(err, contracts.ErrNoSession) {
		return false
	}
	webLogger().WithContext(r.Context()).Security("Session rejected, signing out", "path", r.URL.Path, "error", err)
	m.End(w, r)
	Redirect(w, r, signInTarget(r))
	return true
}

func (m *SessionManager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// signInTarget is the sign-in URL returning to the current page. HTMX
// requests return to the page the browser shows, not the fragment URL.
func signInTarget(r *http.Request) string {
	back := r.URL.RequestURI()
	if IsHTMXRequest(r) {
		if cur, err := url.Parse(r.Header.Get("HX-Current-URL")); err == nil && cur.Path != "" {
			back = cur.RequestURI()
		}
	}
	if r.Method != http.MethodGet && !IsHTMXRequest(r) {
		back = "/home"
	}
	return "/sign-in?redirectUrl=" + url.QueryEscape(back)
}
