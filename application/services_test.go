package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
	"flightadmin/test/helpers"
)

func TestCountryService_CachesSuccessOnly(t *testing.T) {
	gateways := helpers.NewMockGateways()
	td := helpers.NewTestData()
	countries := []admin.Country{td.Country("et", "Ethiopia"), td.Country("ke", "Kenya")}

	gateways.Countries.On("ListCountries", mock.Anything, mock.Anything).
		Return(nil, errors.New("unavailable")).Once()
	gateways.Countries.On("ListCountries", mock.Anything, listing.ListQuery{
		Page: 1, PerPage: 300, OrderBy: "name", OrderDirection: listing.DirectionAsc,
	}).Return(helpers.Page(countries, 2, 1), nil).Once()

	svc := NewCountryService(gateways.Countries, time.Hour)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.Error(t, err)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, countries, got)

	got, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	gateways.Countries.AssertNumberOfCalls(t, "ListCountries", 2)
}

func TestUserService_EditFormLoadsConcurrently(t *testing.T) {
	gateways := helpers.NewMockGateways()
	td := helpers.NewTestData()
	user := td.User("u1", admin.RoleTypeAdmin)

	gateways.Users.On("GetUser", mock.Anything, "u1").Return(&user, nil)
	gateways.Roles.On("ListRoles", mock.Anything, mock.MatchedBy(func(q listing.ListQuery) bool {
		return q.PerPage == 100 && q.Page == 1
	})).Return(helpers.Page([]admin.Role{td.Role("r1", admin.RoleTypeAdmin)}, 1, 1), nil)
	gateways.ExpectCountries([]admin.Country{td.Country("et", "Ethiopia")})

	svc := NewUserService(gateways.Users, gateways.Roles, NewCountryService(gateways.Countries, time.Hour))
	form, err := svc.EditForm(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "u1", form.User.ID)
	assert.Len(t, form.Roles, 1)
	assert.Len(t, form.Countries, 1)
	gateways.AssertAllExpectations(t)
}

func TestUserService_NewFormFailsWhenRolesFail(t *testing.T) {
	gateways := helpers.NewMockGateways()
	gateways.Roles.On("ListRoles", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	gateways.ExpectCountries(nil)

	svc := NewUserService(gateways.Users, gateways.Roles, NewCountryService(gateways.Countries, time.Hour))
	form, err := svc.NewForm(context.Background())

	assert.Nil(t, form)
	assert.ErrorContains(t, err, "load role options")
	gateways.Users.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestUserService_ValidationStopsRequests(t *testing.T) {
	gateways := helpers.NewMockGateways()
	svc := NewUserService(gateways.Users, gateways.Roles, NewCountryService(gateways.Countries, time.Hour))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, admin.CreateUserPayload{Email: "a@b.c"})
	assert.ErrorIs(t, err, admin.ErrNameRequired)

	_, err = svc.CreateSalesAgent(ctx, admin.SalesAgentPayload{
		CreateUserPayload: admin.CreateUserPayload{Email: "a@b.c", Name: "A", Role: "r1", Country: "et", Gender: admin.GenderFemale},
		CommissionAmount:  -1,
	})
	assert.ErrorIs(t, err, admin.ErrNegativeAmount)

	assert.ErrorIs(t, svc.SetStatus(ctx, "u1", "BANNED"), admin.ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateProfile(ctx, admin.UpdateProfilePayload{Gender: "X"}), admin.ErrInvalidGender)

	assert.Empty(t, gateways.Users.Calls)
}

func TestUserService_SetStatus(t *testing.T) {
	gateways := helpers.NewMockGateways()
	gateways.Users.On("UpdateUserStatus", mock.Anything, "u1", admin.UserStatusInactive).Return(nil)

	svc := NewUserService(gateways.Users, gateways.Roles, nil)
	require.NoError(t, svc.SetStatus(context.Background(), "u1", admin.UserStatusInactive))
	gateways.AssertAllExpectations(t)
}

func TestRoleService_CreateSendsEmptyPermissions(t *testing.T) {
	gateways := helpers.NewMockGateways()
	gateways.Roles.On("CreateRole", mock.Anything, mock.MatchedBy(func(p admin.CreateRolePayload) bool {
		return p.Permissions != nil && len(p.Permissions) == 0
	})).Return("r9", nil)

	id, err := NewRoleService(gateways.Roles).CreateRole(context.Background(), admin.CreateRolePayload{
		Name: "Support",
		Type: admin.RoleTypeSubAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, "r9", id)
	gateways.AssertAllExpectations(t)
}

func TestRoleService_CreateRejectsBlankName(t *testing.T) {
	gateways := helpers.NewMockGateways()

	_, err := NewRoleService(gateways.Roles).CreateRole(context.Background(), admin.CreateRolePayload{Type: admin.RoleTypeAdmin})

	assert.ErrorIs(t, err, admin.ErrRoleNameRequired)
	assert.Empty(t, gateways.Roles.Calls)
}

func TestConfigurationService_Rates(t *testing.T) {
	gateways := helpers.NewMockGateways()
	gateways.Configuration.On("GetRate", mock.Anything, admin.RateMarkup).
		Return(admin.Rate{Kind: admin.RateMarkup, Value: 5, Set: true}, nil)
	gateways.Configuration.On("GetRate", mock.Anything, admin.RateTax).
		Return(admin.Rate{Kind: admin.RateTax}, nil)

	rates, err := NewConfigurationService(gateways.Configuration).Rates(context.Background())

	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, admin.RateMarkup, rates[0].Kind)
	assert.True(t, rates[0].Set)
	assert.Equal(t, admin.RateTax, rates[1].Kind)
	assert.False(t, rates[1].Set)
}

func TestConfigurationService_SaveRate(t *testing.T) {
	gateways := helpers.NewMockGateways()
	gateways.Configuration.On("SaveRate", mock.Anything, admin.RateTax, 15.5).Return(nil)
	svc := NewConfigurationService(gateways.Configuration)
	ctx := context.Background()

	v, err := svc.SaveRate(ctx, admin.RateTax, " 15.5 ")
	require.NoError(t, err)
	assert.Equal(t, 15.5, v)

	for _, raw := range []string{"", "abc", "-1", "NaN"} {
		_, err := svc.SaveRate(ctx, admin.RateTax, raw)
		assert.ErrorIs(t, err, admin.ErrInvalidRate, raw)
	}
	_, err = svc.SaveRate(ctx, "fee-rate", "1")
	assert.ErrorIs(t, err, admin.ErrInvalidRate)

	gateways.Configuration.AssertNumberOfCalls(t, "SaveRate", 1)
}

func TestScreenRegistry(t *testing.T) {
	gateways := helpers.NewMockGateways()
	created := 0
	registry := NewScreenRegistry(time.Hour, func() *ScreenSet {
		created++
		return NewScreenSet(gateways.Users, gateways.Roles, gateways.Bookings)
	})

	a := registry.For("s1")
	assert.Same(t, a, registry.For("s1"))
	b := registry.For("s2")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, 2, created)

	registry.Drop("s1")
	assert.Equal(t, 1, registry.Len())
	assert.NotSame(t, a, registry.For("s1"))
}
