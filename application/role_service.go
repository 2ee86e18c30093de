package application

import (
	"context"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
)

// RoleService handles role mutations. Listing goes through the screen controller.
type RoleService struct {
	roles contracts.RoleGateway
}

// NewRoleService creates a role service.
func NewRoleService(roles contracts.RoleGateway) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) GetRole(ctx context.Context, id string) (*admin.Role, error) {
	return s.roles.GetRole(ctx, id)
}

// CreateRole validates and creates a role.
func (s *RoleService) CreateRole(ctx context.Context, payload admin.CreateRolePayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}
	if payload.Permissions == nil {
		payload.Permissions = []admin.Permission{}
	}
	return s.roles.CreateRole(ctx, payload)
}

func (s *RoleService) UpdateRole(ctx context.Context, id string, payload admin.UpdateRolePayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	return s.roles.UpdateRole(ctx, id, payload)
}

func (s *RoleService) SetActive(ctx context.Context, id string, active bool) error {
	return s.roles.SetRoleActive(ctx, id, active)
}

func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	return s.roles.DeleteRole(ctx, id)
}
