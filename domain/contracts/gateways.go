// Package contracts declares the interfaces the application layer depends on.
// Infrastructure implements them; tests mock them.
package contracts

import (
	"context"

	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
)

// ListFetcher fetches one normalized page for a listing screen.
type ListFetcher[T any] interface {
	FetchList(ctx context.Context, q listing.ListQuery) (*listing.ListResult[T], error)
}

// ListFetcherFunc adapts a function to ListFetcher.
type ListFetcherFunc[T any] func(ctx context.Context, q listing.ListQuery) (*listing.ListResult[T], error)

func (f ListFetcherFunc[T]) FetchList(ctx context.Context, q listing.ListQuery) (*listing.ListResult[T], error) {
	return f(ctx, q)
}

// UserGateway covers the admin user endpoints and the shared profile endpoints.
type UserGateway interface {
	ListUsers(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.User], error)
	GetUser(ctx context.Context, id string) (*admin.User, error)
	CreateUser(ctx context.Context, payload admin.CreateUserPayload) (string, error)
	UpdateUser(ctx context.Context, id string, payload admin.UpdateUserPayload) error
	UpdateUserStatus(ctx context.Context, id string, status admin.UserStatus) error
	CreateSalesAgent(ctx context.Context, payload admin.SalesAgentPayload) (string, error)
	UpdateSalesAgent(ctx context.Context, id string, payload admin.SalesAgentPayload) error
	GetProfile(ctx context.Context) (*admin.User, error)
	UpdateProfile(ctx context.Context, payload admin.UpdateProfilePayload) error
}

// RoleGateway covers the admin role endpoints.
type RoleGateway interface {
	ListRoles(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Role], error)
	GetRole(ctx context.Context, id string) (*admin.Role, error)
	CreateRole(ctx context.Context, payload admin.CreateRolePayload) (string, error)
	UpdateRole(ctx context.Context, id string, payload admin.UpdateRolePayload) error
	SetRoleActive(ctx context.Context, id string, active bool) error
	DeleteRole(ctx context.Context, id string) error
}

// BookingGateway covers the admin booking endpoints.
type BookingGateway interface {
	ListBookings(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Booking], error)
	GetBooking(ctx context.Context, id string) (*admin.Booking, error)
}

// ConfigurationGateway reads and writes the global rate settings.
type ConfigurationGateway interface {
	GetRate(ctx context.Context, kind admin.RateKind) (admin.Rate, error)
	SaveRate(ctx context.Context, kind admin.RateKind, value float64) error
}

// CountryGateway lists countries.
type CountryGateway interface {
	ListCountries(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Country], error)
}

// AuthGateway exchanges credentials for tokens.
type AuthGateway interface {
	Login(ctx context.Context, creds admin.Credentials) (*admin.LoginResult, error)
}
