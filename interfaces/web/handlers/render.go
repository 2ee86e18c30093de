// Package handlers render provides HTTP response and HTMX utilities.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RenderResponse renders Templ components to HTTP responses.
func RenderResponse(ctx context.Context, w http.ResponseWriter, r *http.Request, component templ.Component) {
	RenderStatus(ctx, w, r, http.StatusOK, component)
}

// RenderStatus renders a component with an explicit status code.
func RenderStatus(ctx context.Context, w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(ctx, w); err != nil {
		webLogger().WithContext(ctx).Error("Render failed", "path", r.URL.Path, "error", err)
	}
}

// IsHTMXRequest checks if the request came from HTMX.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsHTMXPartialRequest checks if this is a targeted HTMX partial update.
func IsHTMXPartialRequest(r *http.Request) bool {
	return IsHTMXRequest(r) && r.Header.Get("HX-Target") != ""
}

// GetHTMXTarget returns the HTMX target element ID.
func GetHTMXTarget(r *http.Request) string {
	target := r.Header.Get("HX-Target")
	// Remove # prefix if present
	return strings.TrimPrefix(target, "#")
}

// Redirect sends the browser to target: HX-Redirect for HTMX requests, a 303
// otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// responseNavigator carries a list navigation to the browser. HTMX requests
// get the new URL pushed onto history while the handler renders it in place;
// plain requests are redirected.
type responseNavigator struct {
	w      http.ResponseWriter
	r      *http.Request
	target string
}

func (n *responseNavigator) Navigate(target string) {
	n.target = target
	if IsHTMXRequest(n.r) {
		n.w.Header().Set("HX-Push-Url", target)
	}
}

// finish redirects plain requests to the navigation target. It reports
// whether the response has been written.
func (n *responseNavigator) finish() bool {
	if IsHTMXRequest(n.r) {
		return false
	}
	http.Redirect(n.w, n.r, n.target, http.StatusSeeOther)
	return true
}
