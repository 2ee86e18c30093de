// Package templates holds the HTML components and static assets of the dashboard.
package templates

//go:generate templ generate

import "embed"

// FS holds the static assets served under /assets/.
//
//go:embed assets
var FS embed.FS
