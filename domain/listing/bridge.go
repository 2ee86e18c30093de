package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Navigator performs a client-side navigation to target (path plus query).
type Navigator interface {
	Navigate(target string)
}

// Bridge maps a screen's query string to a ListQuery and back.
type Bridge struct {
	screen Screen
}

// NewBridge creates a bridge for screen, filling unset screen fields with defaults.
func NewBridge(screen Screen) Bridge {
	return Bridge{screen: screen.normalized()}
}

// Screen returns the normalized screen definition.
func (b Bridge) Screen() Screen {
	return b.screen
}

// Read parses the query string into a ListQuery. Missing or invalid values fall
// back to the screen defaults, so Page and PerPage are always positive.
func (b Bridge) Read(values url.Values) ListQuery {
	s := b.screen
	q := s.DefaultQuery()

	q.Search = strings.TrimSpace(values.Get(ParamSearch))
	if v := strings.TrimSpace(values.Get(ParamOrderBy)); v != "" {
		q.OrderBy = v
	}
	if d, ok := ParseDirection(values.Get(ParamOrderDirection)); ok {
		q.OrderDirection = d
	}
	q.Page = positiveInt(values.Get(s.PageParam), s.DefaultPage)
	q.PerPage = positiveInt(values.Get(s.PerPageParam), s.DefaultPerPage)

	for _, key := range s.FilterParams {
		if _, fixed := s.FixedFilters[key]; fixed {
			continue
		}
		v := strings.TrimSpace(values.Get(key))
		if s.IsMultiValueParam(key) {
			v = JoinMulti(SplitMulti(v))
		}
		if v != "" {
			q.Extra[key] = v
		}
	}
	return q
}

// AppendQueryParams merges partial into current and returns the new values.
// Keys not named in partial are preserved and empty values remove the key.
// Touching search or any filter key resets the page to 1; changing only the
// page or page size leaves everything else as it was.
func (b Bridge) AppendQueryParams(current url.Values, partial map[string]string) url.Values {
	s := b.screen
	next := make(url.Values, len(current)+len(partial))
	for k, vs := range current {
		next[k] = append([]string(nil), vs...)
	}

	resetPage := false
	for k, v := range partial {
		if k == ParamSearch || s.IsFilterParam(k) {
			resetPage = true
		}
		if s.IsMultiValueParam(k) {
			v = JoinMulti(SplitMulti(v))
		}
		if v == "" {
			next.Del(k)
			continue
		}
		next.Set(k, v)
	}
	if resetPage {
		next.Set(s.PageParam, "1")
	}
	return next
}

// Navigate applies AppendQueryParams and sends the navigator to the result.
func (b Bridge) Navigate(nav Navigator, path string, current url.Values, partial map[string]string) url.Values {
	next := b.AppendQueryParams(current, partial)
	nav.Navigate(Target(path, next))
	return next
}

// Link returns the target a navigation with partial would produce, without
// navigating. Used to render pagination and sort links.
func (b Bridge) Link(path string, current url.Values, partial map[string]string) string {
	return Target(path, b.AppendQueryParams(current, partial))
}

// Encode renders q as the canonical query string of the screen.
func (b Bridge) Encode(q ListQuery) url.Values {
	s := b.screen
	v := url.Values{}
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
	}
	if q.OrderBy != "" {
		v.Set(ParamOrderBy, q.OrderBy)
	}
	if q.OrderDirection != DirectionNone {
		v.Set(ParamOrderDirection, string(q.OrderDirection))
	}
	if q.Page > 0 {
		v.Set(s.PageParam, strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set(s.PerPageParam, strconv.Itoa(q.PerPage))
	}
	for k, val := range q.Extra {
		if _, fixed := s.FixedFilters[k]; fixed || val == "" {
			continue
		}
		v.Set(k, val)
	}
	return v
}

// Target joins a path and query values into a navigable URL.
func Target(path string, values url.Values) string {
	if enc := values.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func positiveInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
