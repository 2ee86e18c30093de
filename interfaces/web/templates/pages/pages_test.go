package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightadmin/interfaces/web/templates/components/core"
	"flightadmin/interfaces/web/templates/components/ui"
)

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	vm := ErrorView{BackLink: "/roles", Toasts: []ui.ToastNotificationView{{Message: "Role is in use", Type: ui.ToastError}}}
	require.NoError(t, ErrorPage(core.LayoutView{Title: "Delete role", SignedIn: true, Active: "roles"}, vm).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "<title>Delete role · Flight Admin</title>")
	assert.Contains(t, out, `<main id="main" class="container"><div class="card"><h1>Delete role</h1>`)
	assert.Contains(t, out, "Role is in use")
	assert.Contains(t, out, `href="/roles">Go back</a>`)
	assert.Contains(t, out, `href="/roles" class="bg-blue-50 text-blue-700 border-b-2 border-blue-600 font-medium" aria-current="page"`)
}

func TestSignInPage_HidesNavigation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SignInPage(SignInView{Email: "a@b.c", RedirectURL: "/users"}).Render(context.Background(), &buf))

	out := buf.String()
	assert.NotContains(t, out, `class="topbar"`)
	assert.Contains(t, out, `<input type="hidden" name="redirectUrl" value="/users">`)
	assert.Contains(t, out, `<input type="email" name="email" value="a@b.c" required>`)
}

func TestRateForm_IsItsOwnSwapTarget(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RateForm(RateView{Kind: "commission", Title: "Commission", Action: "/configuration/commission"}).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `id="rate-commission"`)
	assert.Contains(t, out, `hx-target="#rate-commission"`)
	assert.Contains(t, out, "Not set yet.")
}
