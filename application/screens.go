package application

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/domain/listing"
)

// Listing screens. The user screens keep the pageIndex/pageSize URL keys
// their bookmarks have always used.
var (
	UsersScreen = listing.Screen{
		Name:                  "users",
		PageParam:             "pageIndex",
		PerPageParam:          "pageSize",
		DefaultOrderBy:        listing.DefaultOrderBy,
		DefaultOrderDirection: listing.DirectionAsc,
		FilterParams:          []string{"roleType"},
		MultiValueParams:      []string{"roleType"},
	}

	SalesAgentsScreen = listing.Screen{
		Name:                  "sales-agents",
		PageParam:             "pageIndex",
		PerPageParam:          "pageSize",
		DefaultOrderBy:        listing.DefaultOrderBy,
		DefaultOrderDirection: listing.DirectionAsc,
		FixedFilters:          map[string]string{"roleType": string(admin.RoleTypeSalesAgent)},
	}

	RolesScreen = listing.Screen{
		Name:                  "roles",
		DefaultPerPage:        20,
		DefaultOrderBy:        listing.DefaultOrderBy,
		DefaultOrderDirection: listing.DirectionAsc,
	}

	BookingsScreen = listing.Screen{
		Name:           "bookings",
		DefaultOrderBy: listing.DefaultOrderBy,
		FilterParams:   []string{"paymentStatus"},
	}
)

// ScreenSet is the listing screens of one signed-in session.
type ScreenSet struct {
	Users       *ListController[admin.User]
	SalesAgents *ListController[admin.User]
	Roles       *ListController[admin.Role]
	Bookings    *ListController[admin.Booking]
}

// NewScreenSet wires fresh screen controllers to the gateways.
func NewScreenSet(users contracts.UserGateway, roles contracts.RoleGateway, bookings contracts.BookingGateway) *ScreenSet {
	return &ScreenSet{
		Users:       NewListController[admin.User]("users", UsersScreen, contracts.ListFetcherFunc[admin.User](users.ListUsers)),
		SalesAgents: NewListController[admin.User]("sales agents", SalesAgentsScreen, contracts.ListFetcherFunc[admin.User](users.ListUsers)),
		Roles:       NewListController[admin.Role]("roles", RolesScreen, contracts.ListFetcherFunc[admin.Role](roles.ListRoles)),
		Bookings:    NewListController[admin.Booking]("bookings", BookingsScreen, contracts.ListFetcherFunc[admin.Booking](bookings.ListBookings)),
	}
}

// ScreenRegistry keeps one ScreenSet per session and drops it after the
// session has been idle for the configured time.
type ScreenRegistry struct {
	cache   *gocache.Cache
	factory func() *ScreenSet
}

// NewScreenRegistry creates a registry evicting sets idle for longer than idle.
func NewScreenRegistry(idle time.Duration, factory func() *ScreenSet) *ScreenRegistry {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &ScreenRegistry{
		cache:   gocache.New(idle, idle/2),
		factory: factory,
	}
}

// For returns the screens of sessionID, creating them on first use. Every
// call pushes the idle deadline back.
func (r *ScreenRegistry) For(sessionID string) *ScreenSet {
	if v, ok := r.cache.Get(sessionID); ok {
		set := v.(*ScreenSet)
		r.cache.SetDefault(sessionID, set)
		return set
	}

	set := r.factory()
	if err := r.cache.Add(sessionID, set, gocache.DefaultExpiration); err != nil {
		// Another request of the same session created it first.
		if v, ok := r.cache.Get(sessionID); ok {
			return v.(*ScreenSet)
		}
		r.cache.SetDefault(sessionID, set)
	}
	return set
}

// Drop forgets the screens of sessionID.
func (r *ScreenRegistry) Drop(sessionID string) {
	r.cache.Delete(sessionID)
}

// Len is the number of sessions with live screens.
func (r *ScreenRegistry) Len() int {
	return r.cache.ItemCount()
}
