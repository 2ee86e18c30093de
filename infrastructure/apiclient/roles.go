package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
)

func (c *Client) ListRoles(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Role], error) {
	return FetchList[admin.Role](ctx, c, "roles", "/admin/role/list", q)
}

func (c *Client) GetRole(ctx context.Context, id string) (*admin.Role, error) {
	var r admin.Role
	if err := c.getData(ctx, http.MethodGet, "/admin/role/get/"+url.PathEscape(id), nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) CreateRole(ctx context.Context, payload admin.CreateRolePayload) (string, error) {
	return c.create(ctx, "/admin/role/create", payload)
}

func (c *Client) UpdateRole(ctx context.Context, id string, payload admin.UpdateRolePayload) error {
	return c.getData(ctx, http.MethodPut, "/admin/role/update/"+url.PathEscape(id), nil, payload, nil)
}

// SetRoleActive hits the active or inactive endpoint. Neither takes a body.
func (c *Client) SetRoleActive(ctx context.Context, id string, active bool) error {
	state := "inactive"
	if active {
		state = "active"
	}
	return c.getData(ctx, http.MethodPatch, "/admin/role/update/"+url.PathEscape(id)+"/"+state, nil, nil, nil)
}

func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.getData(ctx, http.MethodDelete, "/admin/role/delete/"+url.PathEscape(id), nil, nil, nil)
}
