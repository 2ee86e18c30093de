package listing

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) Navigate(target string) {
	n.targets = append(n.targets, target)
}

func usersScreen() Screen {
	return Screen{
		Name:                  "users",
		PageParam:             "pageIndex",
		PerPageParam:          "pageSize",
		DefaultOrderDirection: DirectionAsc,
		FilterParams:          []string{"roleType"},
		MultiValueParams:      []string{"roleType"},
	}
}

func bookingsScreen() Screen {
	return Screen{
		Name:         "bookings",
		FilterParams: []string{"paymentStatus"},
	}
}

func TestBridge_Read_Defaults(t *testing.T) {
	q := NewBridge(bookingsScreen()).Read(url.Values{})

	assert.Equal(t, "", q.Search)
	assert.Equal(t, "createdAt", q.OrderBy)
	assert.Equal(t, DirectionNone, q.OrderDirection)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PerPage)
	assert.Empty(t, q.Extra)

	u := NewBridge(usersScreen()).Read(url.Values{})
	assert.Equal(t, DirectionAsc, u.OrderDirection)
}

func TestBridge_Read_InvalidNumbersFallBack(t *testing.T) {
	tests := []struct {
		name        string
		page        string
		perPage     string
		wantPage    int
		wantPerPage int
	}{
		{"non_numeric", "abc", "ten", 1, 10},
		{"zero", "0", "0", 1, 10},
		{"negative", "-3", "-1", 1, 10},
		{"valid", "4", "25", 4, 25},
		{"whitespace", " 2 ", " 50", 2, 50},
		{"past_last_page_is_passed_through", "999", "10", 999, 10},
	}

	bridge := NewBridge(bookingsScreen())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := bridge.Read(url.Values{"page": {tt.page}, "perPage": {tt.perPage}})
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantPerPage, q.PerPage)
		})
	}
}

func TestBridge_Read_ScreenSpecificKeys(t *testing.T) {
	q := NewBridge(usersScreen()).Read(url.Values{
		"pageIndex":      {"3"},
		"pageSize":       {"20"},
		"page":           {"7"},
		"search":         {"smith"},
		"orderBy":        {"name"},
		"orderDirection": {"DESC"},
	})

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.PerPage)
	assert.Equal(t, "smith", q.Search)
	assert.Equal(t, "name", q.OrderBy)
	assert.Equal(t, DirectionDesc, q.OrderDirection)
}

func TestBridge_Read_UnknownDirectionFallsBack(t *testing.T) {
	q := NewBridge(usersScreen()).Read(url.Values{"orderDirection": {"sideways"}})
	assert.Equal(t, DirectionAsc, q.OrderDirection)
}

func TestBridge_Read_MultiValueFilter(t *testing.T) {
	q := NewBridge(usersScreen()).Read(url.Values{"roleType": {"ADMIN,,SALES_AGENT,"}})

	assert.Equal(t, "ADMIN,SALES_AGENT", q.Filter("roleType"))
	assert.Equal(t, []string{"ADMIN", "SALES_AGENT"}, q.MultiFilter("roleType"))
}

func TestBridge_Read_FixedFiltersIgnoreURL(t *testing.T) {
	screen := usersScreen()
	screen.FixedFilters = map[string]string{"roleType": "SALES_AGENT"}

	q := NewBridge(screen).Read(url.Values{"roleType": {"ADMIN"}})
	assert.Equal(t, "SALES_AGENT", q.Filter("roleType"))
}

func TestBridge_Read_IgnoresUnknownKeys(t *testing.T) {
	q := NewBridge(bookingsScreen()).Read(url.Values{"paymentStatus": {"PAID"}, "evil": {"1"}})

	assert.Equal(t, map[string]string{"paymentStatus": "PAID"}, q.Extra)
}

func TestBridge_AppendQueryParams_SearchResetsPage(t *testing.T) {
	bridge := NewBridge(bookingsScreen())
	current := url.Values{"page": {"3"}, "perPage": {"25"}, "orderBy": {"pnr"}}

	next := bridge.AppendQueryParams(current, map[string]string{"search": "smith"})

	assert.Equal(t, "1", next.Get("page"))
	assert.Equal(t, "smith", next.Get("search"))
	assert.Equal(t, "25", next.Get("perPage"))
	assert.Equal(t, "pnr", next.Get("orderBy"))
	// current is not mutated
	assert.Equal(t, "3", current.Get("page"))
}

func TestBridge_AppendQueryParams_FilterResetsPageEvenIfPageGiven(t *testing.T) {
	bridge := NewBridge(bookingsScreen())

	next := bridge.AppendQueryParams(url.Values{"page": {"4"}}, map[string]string{
		"paymentStatus": "PAID",
		"page":          "4",
	})

	assert.Equal(t, "1", next.Get("page"))
	assert.Equal(t, "PAID", next.Get("paymentStatus"))
}

func TestBridge_AppendQueryParams_PageOnlyKeepsOtherFields(t *testing.T) {
	bridge := NewBridge(bookingsScreen())
	current := url.Values{"search": {"smith"}, "paymentStatus": {"PAID"}, "page": {"1"}}

	next := bridge.AppendQueryParams(current, map[string]string{"page": "2"})
	assert.Equal(t, "2", next.Get("page"))
	assert.Equal(t, "smith", next.Get("search"))
	assert.Equal(t, "PAID", next.Get("paymentStatus"))

	next = bridge.AppendQueryParams(next, map[string]string{"perPage": "50"})
	assert.Equal(t, "2", next.Get("page"))
	assert.Equal(t, "50", next.Get("perPage"))
	assert.Equal(t, "smith", next.Get("search"))
}

func TestBridge_AppendQueryParams_UsesScreenPageKey(t *testing.T) {
	bridge := NewBridge(usersScreen())

	next := bridge.AppendQueryParams(url.Values{"pageIndex": {"5"}}, map[string]string{"search": "a"})
	assert.Equal(t, "1", next.Get("pageIndex"))
	assert.Empty(t, next.Get("page"))
}

func TestBridge_AppendQueryParams_EmptyValueRemovesKey(t *testing.T) {
	bridge := NewBridge(usersScreen())

	next := bridge.AppendQueryParams(url.Values{"search": {"smith"}, "roleType": {"ADMIN"}},
		map[string]string{"search": "", "roleType": ",,"})

	_, hasSearch := next["search"]
	_, hasRole := next["roleType"]
	assert.False(t, hasSearch)
	assert.False(t, hasRole)
	assert.Equal(t, "1", next.Get("pageIndex"))
}

func TestBridge_Navigate(t *testing.T) {
	bridge := NewBridge(bookingsScreen())
	nav := &recordingNavigator{}

	next := bridge.Navigate(nav, "/booking", url.Values{"page": {"2"}}, map[string]string{"search": "smith"})

	require.Len(t, nav.targets, 1)
	assert.Equal(t, "/booking?page=1&search=smith", nav.targets[0])
	assert.Equal(t, "smith", next.Get("search"))
}

func TestBridge_EncodeReadRoundTrip(t *testing.T) {
	bridge := NewBridge(usersScreen())
	q := ListQuery{
		Search:         "smith",
		OrderBy:        "name",
		OrderDirection: DirectionDesc,
		Page:           2,
		PerPage:        10,
		Extra:          map[string]string{"roleType": "ADMIN,USER"},
	}

	assert.Equal(t, q, bridge.Read(bridge.Encode(q)))
}

func TestTarget(t *testing.T) {
	assert.Equal(t, "/roles", Target("/roles", url.Values{}))
	assert.Equal(t, "/roles?page=2", Target("/roles", url.Values{"page": {"2"}}))
}

func TestSplitJoinMulti(t *testing.T) {
	assert.Nil(t, SplitMulti(""))
	assert.Equal(t, []string{"A", "B"}, SplitMulti(",A, ,B,"))
	assert.Equal(t, "A,B", JoinMulti([]string{"A", "", " B "}))
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 10, ListQuery{Page: 2, PerPage: 10}.Offset())
	assert.Equal(t, 0, ListQuery{Page: 0, PerPage: 10}.Offset())
	assert.Equal(t, 20, ListQuery{Page: 2, PerPage: 10}.End())

	huge := ListQuery{Page: math.MaxInt / 2, PerPage: 100}
	assert.Equal(t, math.MaxInt, huge.Offset())
	assert.Equal(t, math.MaxInt, huge.End())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 2, TotalPages(15, 10))
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 1, TotalPages(5, 0))
}
