// Package listing holds the list-view query model shared by every listing
// screen: the typed query, the URL bridge, the normalized result and the
// row selection set.
package listing

import (
	"maps"
	"math"
	"strings"
)

// Direction is a sort direction. The empty direction lets the server decide.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// ParseDirection accepts "asc" and "desc" in any case and reports whether the
// value was recognized.
func ParseDirection(v string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "asc":
		return DirectionAsc, true
	case "desc":
		return DirectionDesc, true
	default:
		return DirectionNone, false
	}
}

// ListQuery is the pagination, sort and filter tuple driving one screen's fetch.
type ListQuery struct {
	Search         string
	OrderBy        string
	OrderDirection Direction
	Page           int
	PerPage        int
	Extra          map[string]string
}

// Filter returns the extra filter value for key, or "" when unset.
func (q ListQuery) Filter(key string) string {
	if q.Extra == nil {
		return ""
	}
	return q.Extra[key]
}

// MultiFilter returns a comma-joined extra filter split into its values.
func (q ListQuery) MultiFilter(key string) []string {
	return SplitMulti(q.Filter(key))
}

// Clone returns a copy that shares no map with q.
func (q ListQuery) Clone() ListQuery {
	c := q
	if q.Extra != nil {
		c.Extra = maps.Clone(q.Extra)
	}
	return c
}

// Offset is the zero-based index of the first row of the page. It saturates
// at math.MaxInt for pages too far out to address.
func (q ListQuery) Offset() int {
	if q.Page < 1 || q.PerPage < 1 {
		return 0
	}
	return mulSat(q.Page-1, q.PerPage)
}

// End is the exclusive index of the last row of the page, saturating like Offset.
func (q ListQuery) End() int {
	if q.Page < 1 || q.PerPage < 1 {
		return 0
	}
	return mulSat(q.Page, q.PerPage)
}

// mulSat multiplies two non-negative ints, clamping at math.MaxInt.
func mulSat(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}

// Screen describes how one listing screen maps its URL onto a ListQuery.
type Screen struct {
	Name string

	// URL keys for pagination. Users screens use pageIndex/pageSize.
	PageParam    string
	PerPageParam string

	DefaultPage           int
	DefaultPerPage        int
	DefaultOrderBy        string
	DefaultOrderDirection Direction

	// FilterParams are the extra filter keys the screen understands.
	FilterParams []string
	// MultiValueParams is the subset of FilterParams carrying comma-joined values.
	MultiValueParams []string
	// FixedFilters are always sent and cannot be overridden from the URL.
	FixedFilters map[string]string
}

const (
	ParamSearch         = "search"
	ParamOrderBy        = "orderBy"
	ParamOrderDirection = "orderDirection"

	DefaultPage    = 1
	DefaultPerPage = 10
	DefaultOrderBy = "createdAt"
)

// normalized fills the zero fields of a screen with the package defaults.
func (s Screen) normalized() Screen {
	if s.PageParam == "" {
		s.PageParam = "page"
	}
	if s.PerPageParam == "" {
		s.PerPageParam = "perPage"
	}
	if s.DefaultPage < 1 {
		s.DefaultPage = DefaultPage
	}
	if s.DefaultPerPage < 1 {
		s.DefaultPerPage = DefaultPerPage
	}
	if s.DefaultOrderBy == "" {
		s.DefaultOrderBy = DefaultOrderBy
	}
	return s
}

// IsFilterParam reports whether key is one of the screen's extra filters.
func (s Screen) IsFilterParam(key string) bool {
	for _, f := range s.FilterParams {
		if f == key {
			return true
		}
	}
	return false
}

// IsMultiValueParam reports whether key carries comma-joined values.
func (s Screen) IsMultiValueParam(key string) bool {
	for _, f := range s.MultiValueParams {
		if f == key {
			return true
		}
	}
	return false
}

// DefaultQuery is the query a screen starts from when its URL is empty.
func (s Screen) DefaultQuery() ListQuery {
	s = s.normalized()
	q := ListQuery{
		OrderBy:        s.DefaultOrderBy,
		OrderDirection: s.DefaultOrderDirection,
		Page:           s.DefaultPage,
		PerPage:        s.DefaultPerPage,
		Extra:          map[string]string{},
	}
	for k, v := range s.FixedFilters {
		q.Extra[k] = v
	}
	return q
}

// SplitMulti splits a comma-joined filter value, dropping empty segments.
func SplitMulti(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinMulti is the inverse of SplitMulti.
func JoinMulti(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, ",")
}
