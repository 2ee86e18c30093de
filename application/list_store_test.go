package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/domain/listing"
	"flightadmin/test/helpers"
)

func newUserStore(t *testing.T, n int) *ListStore[admin.User] {
	t.Helper()
	store := NewListStore[admin.User](UsersScreen.DefaultQuery())
	store.SetResult(helpers.Page(helpers.NewTestData().Users(n), n, 1))
	return store
}

func TestListStore_SetFilterIsWholesale(t *testing.T) {
	store := NewListStore[admin.User](UsersScreen.DefaultQuery())

	store.SetFilter(listing.ListQuery{Search: "smith", Page: 99, PerPage: 10})
	got := store.Filter()

	assert.Equal(t, "smith", got.Search)
	assert.Equal(t, 99, got.Page, "no clamping")
	assert.Empty(t, got.OrderBy)
}

func TestListStore_SelectionToggleRoundTrip(t *testing.T) {
	store := newUserStore(t, 3)
	users := store.Snapshot().Items

	store.ToggleSelection(true, users[0])
	store.ToggleSelection(true, users[0])
	assert.Len(t, store.Snapshot().Selected, 1)

	store.ToggleSelection(false, users[0])
	store.ToggleSelection(false, users[0])
	assert.Empty(t, store.Snapshot().Selected)
}

func TestListStore_SelectAllThenDeselectOne(t *testing.T) {
	store := newUserStore(t, 5)

	store.SelectPage()
	require.True(t, store.Snapshot().AllSelected())

	require.NoError(t, store.ToggleSelectionByID(false, "u3"))

	snap := store.Snapshot()
	assert.Len(t, snap.Selected, 4)
	assert.False(t, snap.IsSelected("u3"))
	assert.True(t, snap.IsSelected("u1"))
	assert.False(t, snap.AllSelected())
}

func TestListStore_ToggleByIDRequiresRowOnPage(t *testing.T) {
	store := newUserStore(t, 2)

	assert.ErrorIs(t, store.ToggleSelectionByID(true, "nope"), contracts.ErrRowNotFound)
	assert.NoError(t, store.ToggleSelectionByID(false, "nope"))
	assert.NoError(t, store.ToggleSelectionByID(true, "u2"))
	assert.True(t, store.Snapshot().IsSelected("u2"))
}

func TestListStore_ReplacingItemsClearsSelection(t *testing.T) {
	store := newUserStore(t, 3)
	store.SelectPage()

	store.SetItems(helpers.NewTestData().Users(2))

	snap := store.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Empty(t, snap.Selected)
	assert.Equal(t, 3, snap.Total, "totals stay with SetItems")
}

func TestListStore_ClearAll(t *testing.T) {
	store := newUserStore(t, 3)
	store.SelectAll(store.Snapshot().Items[:2])
	assert.Len(t, store.Snapshot().Selected, 2)

	store.ClearAll()
	assert.Empty(t, store.Snapshot().Selected)
}

func TestListStore_FailedFetchDegradesToEmpty(t *testing.T) {
	store := newUserStore(t, 3)

	gen := store.BeginFetch(store.Filter())
	assert.True(t, store.Snapshot().Loading)

	applied := store.CompleteFetch(gen, nil, errors.New("boom"))

	snap := store.Snapshot()
	assert.True(t, applied)
	assert.False(t, snap.Loading)
	assert.True(t, snap.Failed)
	assert.Empty(t, snap.Items)
	assert.NotNil(t, snap.Items)
	assert.Equal(t, 0, snap.Total)
	assert.Equal(t, 1, snap.TotalPage)
}

func TestListStore_StaleCompletionIsIgnored(t *testing.T) {
	store := NewListStore[admin.User](UsersScreen.DefaultQuery())
	td := helpers.NewTestData()

	pageOne, pageTwo := UsersScreen.DefaultQuery(), UsersScreen.DefaultQuery()
	pageTwo.Page = 2

	older := store.BeginFetch(pageOne)
	newer := store.BeginFetch(pageTwo)

	assert.True(t, store.CompleteFetch(newer, helpers.Page(td.Users(2), 12, 2), nil))
	assert.False(t, store.CompleteFetch(older, helpers.Page(td.Users(7), 7, 1), nil))

	snap := store.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 2, snap.Query.Page)
	assert.False(t, snap.Loading)
}

func TestListStore_QueryFollowsTheAppliedFetch(t *testing.T) {
	store := NewListStore[admin.User](UsersScreen.DefaultQuery())
	td := helpers.NewTestData()

	fetched := UsersScreen.DefaultQuery()
	fetched.Page = 3
	gen := store.BeginFetch(fetched)

	other := UsersScreen.DefaultQuery()
	other.Page = 9
	store.SetFilter(other)

	assert.Equal(t, 1, store.Snapshot().Query.Page, "rows still answer the initial query")

	require.True(t, store.CompleteFetch(gen, helpers.Page(td.Users(1), 21, 3), nil))
	assert.Equal(t, 3, store.Snapshot().Query.Page)
	assert.Equal(t, 9, store.Filter().Page)
}

func TestListStore_SnapshotIsACopy(t *testing.T) {
	store := newUserStore(t, 2)
	snap := store.Snapshot()
	snap.Items[0].Name = "changed"

	assert.NotEqual(t, "changed", store.Snapshot().Items[0].Name)
}
