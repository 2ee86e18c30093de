package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"flightadmin/domain/listing"
	"flightadmin/logging"
)

// webLogger is looked up per call so it follows logging.SetDefault.
func webLogger() *logging.Logger {
	return logging.Default().WithComponent("web")
}

// Helper functions to read form posts.

// formMulti joins every value posted under key, dropping empty ones.
func formMulti(r *http.Request, key string) string {
	return listing.JoinMulti(r.PostForm[key])
}

// formFloat parses an optional number. Empty input is zero.
func formFloat(r *http.Request, key string) (float64, bool) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}

// currentValues decodes the query string a list region was rendered from.
func currentValues(r *http.Request) url.Values {
	values, err := url.ParseQuery(r.PostFormValue("_current"))
	if err != nil {
		return url.Values{}
	}
	return values
}

// localTarget accepts only same-site paths, falling back to def.
func localTarget(target, def string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return def
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return def
	}
	return target
}
