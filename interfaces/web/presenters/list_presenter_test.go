package presenters

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
	"flightadmin/test/helpers"
)

func usersContext(raw string) (ListContext, listing.ListQuery) {
	values, _ := url.ParseQuery(raw)
	bridge := listing.NewBridge(application.UsersScreen)
	lc := ListContext{ID: "users-list", Path: "/users", Bridge: bridge, Current: values}
	return lc, bridge.Read(values)
}

func TestPageRange(t *testing.T) {
	tests := []struct {
		page, totalPage int
		first, last     int
	}{
		{1, 1, 1, 1},
		{1, 10, 1, 5},
		{5, 10, 3, 7},
		{10, 10, 6, 10},
		{2, 3, 1, 3},
		{20, 10, 6, 10},
	}
	for _, tt := range tests {
		first, last := pageRange(tt.page, tt.totalPage)
		assert.Equal(t, tt.first, first, "first page for %d/%d", tt.page, tt.totalPage)
		assert.Equal(t, tt.last, last, "last page for %d/%d", tt.page, tt.totalPage)
	}
}

func TestBuildPagination_LinksKeepTheQuery(t *testing.T) {
	lc, q := usersContext("pageIndex=2&pageSize=10&search=abebe")

	vm := BuildPagination(lc, q, 35, 4)

	assert.Equal(t, 11, vm.From)
	assert.Equal(t, 20, vm.To)
	assert.Equal(t, "/users?pageIndex=1&pageSize=10&search=abebe", vm.PrevLink)
	assert.Equal(t, "/users?pageIndex=3&pageSize=10&search=abebe", vm.NextLink)

	require.Len(t, vm.Pages, 4)
	assert.True(t, vm.Pages[1].Current)
	assert.Equal(t, "/users?pageIndex=4&pageSize=10&search=abebe", vm.Pages[3].Link)

	require.Len(t, vm.PerPageOptions, len(PerPageOptions))
	assert.True(t, vm.PerPageOptions[0].Current)
	assert.Equal(t, "/users?pageIndex=2&pageSize=20&search=abebe", vm.PerPageOptions[1].Link)
}

func TestBuildPagination_Edges(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		lc, q := usersContext("")
		vm := BuildPagination(lc, q, 5, 1)

		assert.Empty(t, vm.PrevLink)
		assert.Empty(t, vm.NextLink)
		assert.Equal(t, 1, vm.From)
		assert.Equal(t, 5, vm.To)
	})

	t.Run("page past the end", func(t *testing.T) {
		lc, q := usersContext("pageIndex=9223372036854775807&pageSize=100")
		vm := BuildPagination(lc, q, 35, 1)

		assert.Zero(t, vm.From)
		assert.Zero(t, vm.To)
		assert.Equal(t, "/users?pageIndex=1&pageSize=100", vm.PrevLink)
		assert.Empty(t, vm.NextLink)
		require.Len(t, vm.Pages, 1)
	})

	t.Run("no rows", func(t *testing.T) {
		lc, q := usersContext("")
		vm := BuildPagination(lc, q, 0, 0)

		assert.Equal(t, 1, vm.TotalPage)
		assert.Zero(t, vm.From)
		assert.Zero(t, vm.To)
		require.Len(t, vm.Pages, 1)
	})
}

func TestBuildList_SortColumnsAndSelection(t *testing.T) {
	lc, q := usersContext("pageIndex=2&pageSize=10")
	td := helpers.NewTestData()

	store := application.NewListStore[admin.User](q)
	store.SetResult(helpers.Page(td.Users(3), 23, 3))
	store.ToggleSelection(true, td.User("u2", admin.RoleTypeAdmin))

	vm := BuildList(lc, store.Snapshot(), userColumns(), nil)

	assert.Equal(t, "users-list", vm.ID)
	assert.Equal(t, "pageIndex=2&pageSize=10", vm.Current)
	assert.Equal(t, 1, vm.Selection.Count)
	assert.False(t, vm.Selection.AllSelected)

	require.Len(t, vm.Rows, 3)
	assert.False(t, vm.Rows[0].Selected)
	assert.True(t, vm.Rows[1].Selected)
	assert.Equal(t, "User u1", vm.Rows[0].Cells[0].Text)

	name, created, role := vm.Columns[0], vm.Columns[5], vm.Columns[2]
	assert.Equal(t, "/users?orderBy=name&orderDirection=asc&pageIndex=2&pageSize=10", name.SortLink)
	assert.Empty(t, name.SortDir)
	assert.Equal(t, "asc", created.SortDir)
	assert.Equal(t, "/users?orderBy=createdAt&orderDirection=desc&pageIndex=2&pageSize=10", created.SortLink)
	assert.Empty(t, role.SortLink)
}

func TestBuildList_SortFollowsServerEcho(t *testing.T) {
	lc, q := usersContext("pageIndex=1&pageSize=10")
	td := helpers.NewTestData()

	res := helpers.Page(td.Users(2), 2, 1)
	res.Applied = &listing.AppliedQuery{
		Page:             1,
		PerPage:          10,
		OrderBy:          "name",
		OrderDirection:   listing.DirectionDesc,
		AvailableOrderBy: []string{"name", "createdAt"},
	}
	store := application.NewListStore[admin.User](q)
	store.SetResult(res)

	vm := BuildList(lc, store.Snapshot(), userColumns(), nil)

	name, email, created := vm.Columns[0], vm.Columns[1], vm.Columns[5]
	assert.Equal(t, "desc", name.SortDir)
	assert.Equal(t, "/users?orderBy=name&orderDirection=asc&pageIndex=1&pageSize=10", name.SortLink)
	assert.Empty(t, created.SortDir, "requested sort is overridden by the echo")
	assert.Empty(t, email.SortLink, "server does not offer email as a sort field")
	assert.NotEmpty(t, created.SortLink)
}

func TestBuildList_FailedFetch(t *testing.T) {
	lc, q := usersContext("")
	store := application.NewListStore[admin.User](q)
	gen := store.BeginFetch(q)
	store.CompleteFetch(gen, nil, assert.AnError)

	vm := BuildList(lc, store.Snapshot(), userColumns(), nil)

	assert.True(t, vm.Failed)
	assert.Empty(t, vm.Rows)
	assert.Equal(t, 1, vm.Pagination.TotalPage)
}

func TestFilterGroups(t *testing.T) {
	q := listing.ListQuery{Extra: map[string]string{
		"roleType":      "ADMIN,USER",
		"paymentStatus": "PAID",
	}}

	multi := MultiFilterGroup("roleType", "Role type", admin.RoleTypes(), q)
	assert.True(t, multi.Multi)
	checked := map[string]bool{}
	for _, c := range multi.Choices {
		checked[c.Value] = c.Checked
	}
	assert.Equal(t, map[string]bool{
		"ADMIN": true, "USER": true, "SALES_AGENT": false, "SUPER_ADMIN": false, "SUB_ADMIN": false,
	}, checked)
	assert.Equal(t, "Sales Agent", multi.Choices[1].Label)

	single := SelectFilterGroup("paymentStatus", "Payment status", admin.PaymentStatuses(), q)
	assert.False(t, single.Multi)
	require.Len(t, single.Choices, 5)
	assert.True(t, single.Choices[0].Checked)
	assert.False(t, single.Choices[1].Checked)
}

func TestUserPresenter_ListActions(t *testing.T) {
	lc, q := usersContext("pageIndex=2")
	td := helpers.NewTestData()
	store := application.NewListStore[admin.User](q)
	store.SetResult(helpers.Page(td.Users(1), 1, 1))

	vm := NewUserPresenter().List(lc, store.Snapshot())

	require.Len(t, vm.Rows, 1)
	actions := vm.Rows[0].Actions
	require.Len(t, actions, 2)
	assert.Equal(t, "/users/u1/edit", actions[0].Href)
	assert.Equal(t, "Deactivate", actions[1].Label)
	assert.Equal(t, "post", actions[1].Method)
	assert.Equal(t, map[string]string{"status": "INACTIVE", "returnTo": "/users?pageIndex=2"}, actions[1].Fields)
	assert.Equal(t, "/users/new", vm.CreateLink)
}
