package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/domain/listing"
)

// roleOptionsPageSize covers every role in one page for form selects.
const roleOptionsPageSize = 100

// UserFormData is everything the user create and edit forms need.
type UserFormData struct {
	User      *admin.User // nil on create
	Roles     []admin.Role
	Countries []admin.Country
}

// UserService handles user, sales agent and profile operations.
type UserService struct {
	users     contracts.UserGateway
	roles     contracts.RoleGateway
	countries *CountryService
}

// NewUserService creates a user service.
func NewUserService(users contracts.UserGateway, roles contracts.RoleGateway, countries *CountryService) *UserService {
	return &UserService{users: users, roles: roles, countries: countries}
}

// GetUser returns one user.
func (s *UserService) GetUser(ctx context.Context, id string) (*admin.User, error) {
	return s.users.GetUser(ctx, id)
}

// NewForm loads the role and country options concurrently.
func (s *UserService) NewForm(ctx context.Context) (*UserFormData, error) {
	return s.loadForm(ctx, "")
}

// EditForm loads the user together with the role and country options.
func (s *UserService) EditForm(ctx context.Context, id string) (*UserFormData, error) {
	return s.loadForm(ctx, id)
}

func (s *UserService) loadForm(ctx context.Context, id string) (*UserFormData, error) {
	data := &UserFormData{}
	g, gctx := errgroup.WithContext(ctx)

	if id != "" {
		g.Go(func() error {
			u, err := s.users.GetUser(gctx, id)
			if err != nil {
				return err
			}
			data.User = u
			return nil
		})
	}
	g.Go(func() error {
		res, err := s.roles.ListRoles(gctx, listing.ListQuery{
			Page:           1,
			PerPage:        roleOptionsPageSize,
			OrderBy:        "name",
			OrderDirection: listing.DirectionAsc,
		})
		if err != nil {
			return fmt.Errorf("load role options: %w", err)
		}
		data.Roles = res.Items
		return nil
	})
	g.Go(func() error {
		countries, err := s.countries.List(gctx)
		if err != nil {
			return fmt.Errorf("load country options: %w", err)
		}
		data.Countries = countries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// CreateUser validates and creates a user, returning its id.
func (s *UserService) CreateUser(ctx context.Context, payload admin.CreateUserPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}
	return s.users.CreateUser(ctx, payload)
}

// CreateSalesAgent validates and creates a sales agent, returning its id.
func (s *UserService) CreateSalesAgent(ctx context.Context, payload admin.SalesAgentPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}
	return s.users.CreateSalesAgent(ctx, payload)
}

// UpdateUser validates and applies an edit.
func (s *UserService) UpdateUser(ctx context.Context, id string, payload admin.UpdateUserPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	return s.users.UpdateUser(ctx, id, payload)
}

// UpdateSalesAgent validates and applies an edit to a sales agent.
func (s *UserService) UpdateSalesAgent(ctx context.Context, id string, payload admin.SalesAgentPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	return s.users.UpdateSalesAgent(ctx, id, payload)
}

// SetStatus activates or deactivates a user.
func (s *UserService) SetStatus(ctx context.Context, id string, status admin.UserStatus) error {
	if !status.Valid() {
		return admin.ErrInvalidStatus
	}
	return s.users.UpdateUserStatus(ctx, id, status)
}

// Profile returns the signed-in user's profile with the country options.
func (s *UserService) Profile(ctx context.Context) (*admin.User, []admin.Country, error) {
	var (
		user      *admin.User
		countries []admin.Country
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.GetProfile(gctx)
		user = u
		return err
	})
	g.Go(func() error {
		c, err := s.countries.List(gctx)
		countries = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return user, countries, nil
}

// UpdateProfile validates and saves the signed-in user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, payload admin.UpdateProfilePayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	return s.users.UpdateProfile(ctx, payload)
}
