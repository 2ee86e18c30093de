package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
)

// MockUserGateway implements UserGateway for testing
type MockUserGateway struct {
	mock.Mock
}

func (m *MockUserGateway) ListUsers(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.User], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.ListResult[admin.User]), args.Error(1)
}

func (m *MockUserGateway) GetUser(ctx context.Context, id string) (*admin.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.User), args.Error(1)
}

func (m *MockUserGateway) CreateUser(ctx context.Context, payload admin.CreateUserPayload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *MockUserGateway) UpdateUser(ctx context.Context, id string, payload admin.UpdateUserPayload) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *MockUserGateway) UpdateUserStatus(ctx context.Context, id string, status admin.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserGateway) CreateSalesAgent(ctx context.Context, payload admin.SalesAgentPayload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *MockUserGateway) UpdateSalesAgent(ctx context.Context, id string, payload admin.SalesAgentPayload) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *MockUserGateway) GetProfile(ctx context.Context) (*admin.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.User), args.Error(1)
}

func (m *MockUserGateway) UpdateProfile(ctx context.Context, payload admin.UpdateProfilePayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockRoleGateway implements RoleGateway for testing
type MockRoleGateway struct {
	mock.Mock
}

func (m *MockRoleGateway) ListRoles(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Role], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.ListResult[admin.Role]), args.Error(1)
}

func (m *MockRoleGateway) GetRole(ctx context.Context, id string) (*admin.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Role), args.Error(1)
}

func (m *MockRoleGateway) CreateRole(ctx context.Context, payload admin.CreateRolePayload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *MockRoleGateway) UpdateRole(ctx context.Context, id string, payload admin.UpdateRolePayload) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *MockRoleGateway) SetRoleActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockRoleGateway) DeleteRole(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingGateway implements BookingGateway for testing
type MockBookingGateway struct {
	mock.Mock
}

func (m *MockBookingGateway) ListBookings(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Booking], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.ListResult[admin.Booking]), args.Error(1)
}

func (m *MockBookingGateway) GetBooking(ctx context.Context, id string) (*admin.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Booking), args.Error(1)
}

// MockConfigurationGateway implements ConfigurationGateway for testing
type MockConfigurationGateway struct {
	mock.Mock
}

func (m *MockConfigurationGateway) GetRate(ctx context.Context, kind admin.RateKind) (admin.Rate, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(admin.Rate), args.Error(1)
}

func (m *MockConfigurationGateway) SaveRate(ctx context.Context, kind admin.RateKind, value float64) error {
	args := m.Called(ctx, kind, value)
	return args.Error(0)
}

// MockCountryGateway implements CountryGateway for testing
type MockCountryGateway struct {
	mock.Mock
}

func (m *MockCountryGateway) ListCountries(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Country], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.ListResult[admin.Country]), args.Error(1)
}

// MockAuthGateway implements AuthGateway for testing
type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(ctx context.Context, creds admin.Credentials) (*admin.LoginResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.LoginResult), args.Error(1)
}
