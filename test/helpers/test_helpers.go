package helpers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"

	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
	"flightadmin/test/mocks"
)

// MockGateways holds all gateway mocks for easy injection
type MockGateways struct {
	Users         *mocks.MockUserGateway
	Roles         *mocks.MockRoleGateway
	Bookings      *mocks.MockBookingGateway
	Configuration *mocks.MockConfigurationGateway
	Countries     *mocks.MockCountryGateway
	Auth          *mocks.MockAuthGateway
	Sessions      *mocks.MockSessionRepository
}

// NewMockGateways creates a new set of gateway mocks
func NewMockGateways() *MockGateways {
	return &MockGateways{
		Users:         &mocks.MockUserGateway{},
		Roles:         &mocks.MockRoleGateway{},
		Bookings:      &mocks.MockBookingGateway{},
		Configuration: &mocks.MockConfigurationGateway{},
		Countries:     &mocks.MockCountryGateway{},
		Auth:          &mocks.MockAuthGateway{},
		Sessions:      &mocks.MockSessionRepository{},
	}
}

// ExpectUserPage sets up a successful user list fetch for any query
func (m *MockGateways) ExpectUserPage(result *listing.ListResult[admin.User]) {
	m.Users.On("ListUsers", mock.Anything, mock.Anything).Return(result, nil)
}

// ExpectRolePage sets up a successful role list fetch for any query
func (m *MockGateways) ExpectRolePage(result *listing.ListResult[admin.Role]) {
	m.Roles.On("ListRoles", mock.Anything, mock.Anything).Return(result, nil)
}

// ExpectBookingPage sets up a successful booking list fetch for any query
func (m *MockGateways) ExpectBookingPage(result *listing.ListResult[admin.Booking]) {
	m.Bookings.On("ListBookings", mock.Anything, mock.Anything).Return(result, nil)
}

// ExpectCountries sets up a successful country list fetch
func (m *MockGateways) ExpectCountries(countries []admin.Country) {
	m.Countries.On("ListCountries", mock.Anything, mock.Anything).
		Return(&listing.ListResult[admin.Country]{Items: countries, Total: len(countries), TotalPage: 1}, nil)
}

// AssertAllExpectations verifies all mock expectations were met
func (m *MockGateways) AssertAllExpectations(t *testing.T) {
	m.Users.AssertExpectations(t)
	m.Roles.AssertExpectations(t)
	m.Bookings.AssertExpectations(t)
	m.Configuration.AssertExpectations(t)
	m.Countries.AssertExpectations(t)
	m.Auth.AssertExpectations(t)
	m.Sessions.AssertExpectations(t)
}

// TestData provides common fixtures
type TestData struct{}

// NewTestData creates a new test data provider
func NewTestData() *TestData {
	return &TestData{}
}

// User creates a user with the given id and role type
func (td *TestData) User(id string, roleType admin.RoleType) admin.User {
	return admin.User{
		ID:        id,
		Name:      "User " + id,
		Username:  "user_" + id,
		Email:     id + "@example.com",
		Status:    admin.UserStatusActive,
		CreatedAt: "2024-01-02T10:00:00.000Z",
		Role:      td.Role("role-"+string(roleType), roleType),
		Country:   td.Country("et", "Ethiopia"),
	}
}

// Users creates n users with ids u1..un
func (td *TestData) Users(n int) []admin.User {
	users := make([]admin.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, td.User(fmt.Sprintf("u%d", i), admin.RoleTypeAdmin))
	}
	return users
}

// Role creates an active role
func (td *TestData) Role(id string, roleType admin.RoleType) admin.Role {
	return admin.Role{
		ID:        id,
		Name:      string(roleType),
		Type:      roleType,
		IsActive:  true,
		CreatedAt: "2024-01-01T10:00:00.000Z",
	}
}

// Booking creates a booking with one traveller
func (td *TestData) Booking(id string, status admin.PaymentStatus) admin.Booking {
	return admin.Booking{
		ID:                  id,
		PNR:                 "PNR" + id,
		BookedBy:            admin.Booker{ID: "u1", Name: "Abebe Kebede"},
		BookerType:          "USER",
		PaymentStatus:       status,
		BasePayment:         "1200.50",
		UserPaymentCurrency: "ETB",
		TravellerInfo:       []admin.Traveller{{FullName: "Abebe Kebede"}},
		CreatedAt:           "2024-03-01T08:30:00.000Z",
	}
}

// Country creates a country
func (td *TestData) Country(id, name string) admin.Country {
	return admin.Country{ID: id, Name: name, Alpha2Code: "ET", Currency: "ETB"}
}

// Page wraps items in a paged result
func Page[T any](items []T, total, totalPage int) *listing.ListResult[T] {
	return &listing.ListResult[T]{
		Items:     items,
		Total:     total,
		TotalPage: totalPage,
		Shape:     listing.ShapeUnderscoreMetadata,
	}
}
