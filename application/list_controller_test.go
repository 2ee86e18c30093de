package application

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/domain/listing"
	"flightadmin/test/helpers"
)

func TestListController_LoadAppliesURL(t *testing.T) {
	gateways := helpers.NewMockGateways()
	td := helpers.NewTestData()
	expected := listing.ListQuery{
		Search:         "abebe",
		OrderBy:        "createdAt",
		OrderDirection: listing.DirectionAsc,
		Page:           2,
		PerPage:        10,
		Extra:          map[string]string{"roleType": "ADMIN,USER"},
	}
	gateways.Users.On("ListUsers", mock.Anything, expected).
		Return(helpers.Page(td.Users(5), 15, 2), nil)

	ctrl := NewListController[admin.User]("users", UsersScreen, contracts.ListFetcherFunc[admin.User](gateways.Users.ListUsers))
	values, _ := url.ParseQuery("search=abebe&pageIndex=2&roleType=ADMIN,,USER")

	snap, err := ctrl.Load(context.Background(), values)

	require.NoError(t, err)
	assert.Len(t, snap.Items, 5)
	assert.Equal(t, 15, snap.Total)
	assert.Equal(t, 2, snap.TotalPage)
	assert.Equal(t, expected, snap.Query)
	assert.False(t, snap.Loading)
	gateways.AssertAllExpectations(t)
}

func TestListController_FixedFilterAlwaysSent(t *testing.T) {
	gateways := helpers.NewMockGateways()
	gateways.Users.On("ListUsers", mock.Anything, mock.MatchedBy(func(q listing.ListQuery) bool {
		return q.Filter("roleType") == "SALES_AGENT"
	})).Return(helpers.Page([]admin.User{}, 0, 1), nil)

	set := NewScreenSet(gateways.Users, gateways.Roles, gateways.Bookings)
	_, err := set.SalesAgents.Load(context.Background(), url.Values{"roleType": {"ADMIN"}})

	require.NoError(t, err)
	gateways.AssertAllExpectations(t)
}

func TestListController_FetchErrorDegradesToEmpty(t *testing.T) {
	gateways := helpers.NewMockGateways()
	boom := errors.New("network down")
	gateways.Bookings.On("ListBookings", mock.Anything, mock.Anything).Return(nil, boom)

	ctrl := NewListController[admin.Booking]("bookings", BookingsScreen, contracts.ListFetcherFunc[admin.Booking](gateways.Bookings.ListBookings))
	snap, err := ctrl.Load(context.Background(), url.Values{})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, snap.Items)
	assert.True(t, snap.Failed)
	assert.False(t, snap.Loading)
	assert.Equal(t, listing.DirectionNone, snap.Query.OrderDirection)
}

// gatedFetcher blocks each fetch until its query's page is released.
type gatedFetcher struct {
	mu      sync.Mutex
	gates   map[int]chan struct{}
	started chan int
	td      *helpers.TestData
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{gates: map[int]chan struct{}{}, started: make(chan int, 4), td: helpers.NewTestData()}
}

func (f *gatedFetcher) gate(page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gates[page] == nil {
		f.gates[page] = make(chan struct{})
	}
	return f.gates[page]
}

func (f *gatedFetcher) FetchList(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.User], error) {
	f.started <- q.Page
	<-f.gate(q.Page)
	// Page n returns n rows so the winner is identifiable.
	return helpers.Page(f.td.Users(q.Page), q.Page, 1), nil
}

func TestListController_StaleResponseIsDiscarded(t *testing.T) {
	fetcher := newGatedFetcher()
	ctrl := NewListController[admin.User]("users", UsersScreen, fetcher)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = ctrl.Load(ctx, url.Values{"pageIndex": {"3"}})
	}()
	require.Equal(t, 3, <-fetcher.started)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = ctrl.Load(ctx, url.Values{"pageIndex": {"2"}})
	}()
	require.Equal(t, 2, <-fetcher.started)

	// The newer request finishes first, then the older one.
	close(fetcher.gate(2))
	require.Eventually(t, func() bool {
		return len(ctrl.Store().Snapshot().Items) == 2
	}, time.Second, 5*time.Millisecond)

	close(fetcher.gate(3))
	wg.Wait()

	snap := ctrl.Store().Snapshot()
	assert.Len(t, snap.Items, 2, "older response must not overwrite newer")
	assert.False(t, snap.Loading)
	assert.Equal(t, 2, snap.Query.Page)
}

func TestListController_ConcurrentLoadsKeepRowsAndQueryTogether(t *testing.T) {
	td := helpers.NewTestData()
	// Page n returns n rows, so every snapshot can be checked against its query.
	fetcher := contracts.ListFetcherFunc[admin.User](func(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.User], error) {
		time.Sleep(time.Duration(q.Page%3) * time.Millisecond)
		return helpers.Page(td.Users(q.Page), q.Page, 1), nil
	})
	ctrl := NewListController[admin.User]("users", UsersScreen, fetcher)
	_, err := ctrl.Load(context.Background(), url.Values{"pageIndex": {"1"}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	snaps := make([]ListSnapshot[admin.User], 40)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			page := strconv.Itoa(i%5 + 1)
			snaps[i], _ = ctrl.Load(context.Background(), url.Values{"pageIndex": {page}})
		}(i)
	}
	wg.Wait()

	for i, snap := range snaps {
		assert.Len(t, snap.Items, snap.Query.Page, "snapshot %d", i)
	}
	final := ctrl.Store().Snapshot()
	assert.Len(t, final.Items, final.Query.Page)
	assert.False(t, final.Loading)
}

func TestListController_SelectionClearedOnReload(t *testing.T) {
	gateways := helpers.NewMockGateways()
	gateways.ExpectRolePage(helpers.Page([]admin.Role{
		helpers.NewTestData().Role("r1", admin.RoleTypeAdmin),
		helpers.NewTestData().Role("r2", admin.RoleTypeUser),
	}, 2, 1))

	ctrl := NewListController[admin.Role]("roles", RolesScreen, contracts.ListFetcherFunc[admin.Role](gateways.Roles.ListRoles))
	_, err := ctrl.Load(context.Background(), nil)
	require.NoError(t, err)

	ctrl.Store().SelectPage()
	require.Len(t, ctrl.Store().Snapshot().Selected, 2)

	snap, err := ctrl.Load(context.Background(), url.Values{"page": {"1"}})
	require.NoError(t, err)
	assert.Empty(t, snap.Selected)
	assert.Equal(t, 20, snap.Query.PerPage)
}
