package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/domain/listing"
	"flightadmin/infrastructure/apiclient"
	"flightadmin/interfaces/web/presenters"
	"flightadmin/test/helpers"
)

const (
	testCookie  = "flightadmin_session"
	testSession = "sess-1"
)

type testApp struct {
	gw      *helpers.MockGateways
	screens *application.ScreenRegistry
	router  chi.Router
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gw := helpers.NewMockGateways()

	countries := application.NewCountryService(gw.Countries, time.Minute)
	auth := application.NewAuthService(gw.Auth, gw.Sessions, time.Hour)
	screens := application.NewScreenRegistry(time.Minute, func() *application.ScreenSet {
		return application.NewScreenSet(gw.Users, gw.Roles, gw.Bookings)
	})
	sessions := NewSessionManager(auth, screens, testCookie, false)
	base := NewBase(sessions, presenters.NewToastPresenter())

	userPresenter := presenters.NewUserPresenter()
	authHandlers := NewAuthHandlers(base, auth, application.NewUserService(gw.Users, gw.Roles, countries), userPresenter)
	userHandlers := NewUserHandlers(base, application.NewUserService(gw.Users, gw.Roles, countries), userPresenter)
	roleHandlers := NewRoleHandlers(base, application.NewRoleService(gw.Roles), presenters.NewRolePresenter())
	bookingHandlers := NewBookingHandlers(base, application.NewBookingService(gw.Bookings), presenters.NewBookingPresenter())
	configHandlers := NewConfigurationHandlers(base, application.NewConfigurationService(gw.Configuration), presenters.NewConfigurationPresenter())

	r := chi.NewRouter()
	r.Use(sessions.Load)
	r.Group(func(r chi.Router) {
		r.Use(sessions.RedirectIfSignedIn)
		authHandlers.MountPublic(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireSession)
		authHandlers.Mount(r)
		userHandlers.Mount(r)
		roleHandlers.Mount(r)
		bookingHandlers.Mount(r)
		configHandlers.Mount(r)
	})

	return &testApp{gw: gw, screens: screens, router: r}
}

// signedIn makes testSession a live session.
func (a *testApp) signedIn() {
	a.gw.Sessions.On("Get", mock.Anything, testSession).Return(&admin.Session{
		ID:          testSession,
		AccessToken: "tok",
		RoleType:    string(admin.RoleTypeAdmin),
		ExpiresAt:   time.Now().Add(time.Hour),
	}, nil)
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testSession})
	return req
}

func htmx(req *http.Request, target string) *http.Request {
	req.Header.Set("HX-Request", "true")
	if target != "" {
		req.Header.Set("HX-Target", target)
	}
	return req
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func cookieCleared(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie && c.Value == "" && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestRequireSession_RedirectsToSignIn(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/users?search=abebe", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in?redirectUrl=%2Fusers%3Fsearch%3Dabebe", rec.Header().Get("Location"))
}

func TestRequireSession_HTMXReturnsToShownPage(t *testing.T) {
	app := newTestApp(t)

	req := htmx(httptest.NewRequest(http.MethodGet, "/users", nil), "users-list")
	req.Header.Set("HX-Current-URL", "http://localhost/users?pageIndex=2")
	rec := app.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/sign-in?redirectUrl=%2Fusers%3FpageIndex%3D2", rec.Header().Get("HX-Redirect"))
}

func TestSessionLoad_ClearsUnknownCookie(t *testing.T) {
	app := newTestApp(t)
	app.gw.Sessions.On("Get", mock.Anything, testSession).Return(nil, contracts.ErrSessionNotFound)

	rec := app.do(withSession(httptest.NewRequest(http.MethodGet, "/home", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, cookieCleared(rec))
}

func TestListScreen_FullPageAndPartial(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	td := helpers.NewTestData()
	app.gw.ExpectUserPage(helpers.Page(td.Users(3), 3, 1))

	t.Run("full page", func(t *testing.T) {
		rec := app.do(withSession(httptest.NewRequest(http.MethodGet, "/users", nil)))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, strings.ToLower(body), "<!doctype html>")
		assert.Contains(t, body, `id="users-list"`)
		assert.Contains(t, body, "User u1")
	})

	t.Run("partial", func(t *testing.T) {
		req := htmx(withSession(httptest.NewRequest(http.MethodGet, "/users?pageIndex=1", nil)), "users-list")
		rec := app.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.NotContains(t, strings.ToLower(body), "<!doctype html>")
		assert.True(t, strings.HasPrefix(body, `<section class="list" id="users-list"`))
	})
}

func TestListScreen_QueryNavigates(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	td := helpers.NewTestData()
	app.gw.Users.On("ListUsers", mock.Anything, mock.MatchedBy(func(q listing.ListQuery) bool {
		return q.Search == "abebe" && q.Page == 1 && q.PerPage == 10
	})).Return(helpers.Page(td.Users(1), 1, 1), nil)

	form := url.Values{
		"search":   {"abebe"},
		"_current": {"pageIndex=3&pageSize=10"},
	}

	t.Run("htmx pushes the url and renders in place", func(t *testing.T) {
		rec := app.do(htmx(withSession(postForm("/users/query", form)), "users-list"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/users?pageIndex=1&pageSize=10&search=abebe", rec.Header().Get("HX-Push-Url"))
		assert.Contains(t, rec.Body.String(), `id="users-list"`)
		app.gw.Users.AssertNumberOfCalls(t, "ListUsers", 1)
	})

	t.Run("plain post redirects", func(t *testing.T) {
		rec := app.do(withSession(postForm("/users/query", form)))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users?pageIndex=1&pageSize=10&search=abebe", rec.Header().Get("Location"))
	})
}

func TestListScreen_SelectionWithoutRefetch(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	td := helpers.NewTestData()
	app.gw.ExpectUserPage(helpers.Page(td.Users(3), 3, 1))

	rec := app.do(withSession(httptest.NewRequest(http.MethodGet, "/users", nil)))
	require.Equal(t, http.StatusOK, rec.Code)

	select1 := url.Values{"id": {"u2"}, "checked": {"true"}, "_current": {""}}
	rec = app.do(htmx(withSession(postForm("/users/select", select1)), "users-list"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 selected")

	rec = app.do(htmx(withSession(postForm("/users/select-all", url.Values{"checked": {"true"}})), "users-list"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "3 selected")

	rec = app.do(htmx(withSession(postForm("/users/select-all", url.Values{})), "users-list"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "selected</div>")

	snap := app.screens.For(testSession).Users.Store().Snapshot()
	assert.Empty(t, snap.Selected)
	app.gw.Users.AssertNumberOfCalls(t, "ListUsers", 1)
}

func TestListScreen_AuthFailureSignsOut(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	app.gw.Users.On("ListUsers", mock.Anything, mock.Anything).
		Return(nil, &apiclient.ListFetchError{Resource: "users", Err: &apiclient.AuthError{Path: "/admin/user/list"}})
	app.gw.Sessions.On("Delete", mock.Anything, testSession).Return(nil)

	req := htmx(withSession(httptest.NewRequest(http.MethodGet, "/users?pageIndex=2", nil)), "users-list")
	req.Header.Set("HX-Current-URL", "http://localhost/users?pageIndex=2")
	rec := app.do(req)

	assert.Equal(t, "/sign-in?redirectUrl=%2Fusers%3FpageIndex%3D2", rec.Header().Get("HX-Redirect"))
	assert.True(t, cookieCleared(rec))
	assert.Equal(t, 0, app.screens.Len())
	app.gw.Sessions.AssertCalled(t, "Delete", mock.Anything, testSession)
}

func TestListScreen_FetchFailureRendersEmpty(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	app.gw.Bookings.On("ListBookings", mock.Anything, mock.Anything).
		Return(nil, &apiclient.NetworkError{Method: "GET", Path: "/admin/bookings/list", Err: errors.New("refused")})

	rec := app.do(withSession(httptest.NewRequest(http.MethodGet, "/booking", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not load data. Try again later.")
}

func TestUserDetail_NotFound(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	app.gw.Users.On("GetUser", mock.Anything, "missing").
		Return(nil, &apiclient.NotFoundError{Path: "/admin/user/get/missing"})

	rec := app.do(withSession(httptest.NewRequest(http.MethodGet, "/users/missing", nil)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "This user does not exist.")
}

func TestUserStatus_ReturnsToLocalTarget(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	app.gw.Users.On("UpdateUserStatus", mock.Anything, "u1", admin.UserStatusInactive).Return(nil)

	tests := []struct {
		name     string
		returnTo string
		want     string
	}{
		{"list page", "/users?pageIndex=2", "/users?pageIndex=2"},
		{"external url", "https://example.com/", "/users/u1"},
		{"protocol relative", "//example.com", "/users/u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"status": {"INACTIVE"}, "returnTo": {tt.returnTo}}
			rec := app.do(withSession(postForm("/users/u1/status", form)))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestRoleCreate_SendsManageGrants(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	app.gw.Roles.On("CreateRole", mock.Anything, admin.CreateRolePayload{
		Name: "Ops",
		Type: admin.RoleTypeSubAdmin,
		Permissions: []admin.Permission{
			{Subject: "USER", Action: []string{"manage"}},
			{Subject: "ROLE", Action: []string{"manage"}},
		},
	}).Return("r1", nil)

	form := url.Values{"name": {" Ops "}, "type": {"SUB_ADMIN"}, "permissions": {"USER", "ROLE"}}
	rec := app.do(withSession(postForm("/roles/new", form)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/roles", rec.Header().Get("Location"))
	app.gw.Roles.AssertExpectations(t)
}

func TestRoleCreate_InvalidInputRerendersForm(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()

	rec := app.do(withSession(postForm("/roles/new", url.Values{"type": {"ADMIN"}})))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please check your input")
	app.gw.Roles.AssertNotCalled(t, "CreateRole", mock.Anything, mock.Anything)
}

func TestConfiguration_SaveRate(t *testing.T) {
	t.Run("invalid value makes no call", func(t *testing.T) {
		app := newTestApp(t)
		app.signedIn()

		rec := app.do(htmx(withSession(postForm("/configuration/tax-rate", url.Values{"value": {"abc"}})), "rate-tax-rate"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, admin.ErrInvalidRate.Error())
		assert.Contains(t, body, `value="abc"`)
		app.gw.Configuration.AssertNotCalled(t, "SaveRate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid value is saved", func(t *testing.T) {
		app := newTestApp(t)
		app.signedIn()
		app.gw.Configuration.On("SaveRate", mock.Anything, admin.RateTax, 12.5).Return(nil)

		rec := app.do(htmx(withSession(postForm("/configuration/tax-rate", url.Values{"value": {" 12.5 "}})), "rate-tax-rate"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Tax Rate saved.")
		assert.Contains(t, body, `value="12.5"`)
		app.gw.Configuration.AssertExpectations(t)
	})

	t.Run("unknown rate", func(t *testing.T) {
		app := newTestApp(t)
		app.signedIn()

		rec := app.do(withSession(postForm("/configuration/vat", url.Values{"value": {"1"}})))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSignIn(t *testing.T) {
	creds := admin.Credentials{Email: "admin@example.com", Password: "secret"}

	t.Run("starts a session and returns to the requested page", func(t *testing.T) {
		app := newTestApp(t)
		app.gw.Auth.On("Login", mock.Anything, creds).
			Return(&admin.LoginResult{AccessToken: "tok", ExpiresIn: 3600, RoleType: "ADMIN"}, nil)
		app.gw.Sessions.On("Create", mock.Anything, mock.AnythingOfType("*admin.Session")).Return(nil)

		form := url.Values{"email": {creds.Email}, "password": {creds.Password}, "redirectUrl": {"/booking?page=2"}}
		rec := app.do(postForm("/sign-in", form))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/booking?page=2", rec.Header().Get("Location"))
		var cookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == testCookie {
				cookie = c
			}
		}
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("ignores an external redirect", func(t *testing.T) {
		app := newTestApp(t)
		app.gw.Auth.On("Login", mock.Anything, creds).Return(&admin.LoginResult{AccessToken: "tok"}, nil)
		app.gw.Sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

		form := url.Values{"email": {creds.Email}, "password": {creds.Password}, "redirectUrl": {"https://example.com"}}
		rec := app.do(postForm("/sign-in", form))

		assert.Equal(t, "/home", rec.Header().Get("Location"))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		app := newTestApp(t)
		app.gw.Auth.On("Login", mock.Anything, creds).
			Return(nil, &apiclient.AuthError{Path: "/public/auth/login/credential"})

		rec := app.do(postForm("/sign-in", url.Values{"email": {creds.Email}, "password": {creds.Password}}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password.")
		assert.False(t, cookieCleared(rec))
		app.gw.Sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing password", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.do(postForm("/sign-in", url.Values{"email": {creds.Email}}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email and password are required.")
		app.gw.Auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("signed-in users go home", func(t *testing.T) {
		app := newTestApp(t)
		app.signedIn()

		rec := app.do(withSession(httptest.NewRequest(http.MethodGet, "/sign-in", nil)))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/home", rec.Header().Get("Location"))
	})
}

func TestSignOut(t *testing.T) {
	app := newTestApp(t)
	app.signedIn()
	app.gw.Sessions.On("Delete", mock.Anything, testSession).Return(nil)

	rec := app.do(withSession(postForm("/sign-out", url.Values{})))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
	assert.True(t, cookieCleared(rec))
	app.gw.Sessions.AssertExpectations(t)
}

type stubHealth struct {
	err error
}

func (s stubHealth) Health(context.Context) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]any{"read_pool": map[string]any{"open_connections": 1}}, nil
}

func TestSystemHandlers(t *testing.T) {
	assets := fstest.MapFS{"app.css": {Data: []byte("body{}")}}

	t.Run("health ok", func(t *testing.T) {
		r := chi.NewRouter()
		NewSystemHandlers(stubHealth{}, assets, "").Mount(r)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","database":{"read_pool":{"open_connections":1}}}`, rec.Body.String())
	})

	t.Run("health failing", func(t *testing.T) {
		r := chi.NewRouter()
		NewSystemHandlers(stubHealth{err: errors.New("disk I/O error")}, assets, "").Mount(r)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "unavailable")
	})

	t.Run("assets", func(t *testing.T) {
		r := chi.NewRouter()
		NewSystemHandlers(stubHealth{}, assets, "").Mount(r)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.css", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "body{}", rec.Body.String())
	})
}
