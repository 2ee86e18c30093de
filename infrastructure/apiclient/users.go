package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
)

// ListUsers fetches a page of /admin/user/list.
func (c *Client) ListUsers(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.User], error) {
	return FetchList[admin.User](ctx, c, "users", "/admin/user/list", q)
}

// GetUser fetches one user.
func (c *Client) GetUser(ctx context.Context, id string) (*admin.User, error) {
	var u admin.User
	if err := c.getData(ctx, http.MethodGet, "/admin/user/get/"+url.PathEscape(id), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser creates a staff or customer account.
func (c *Client) CreateUser(ctx context.Context, payload admin.CreateUserPayload) (string, error) {
	return c.create(ctx, "/admin/user/create", payload)
}

// UpdateUser updates the editable fields of a user.
func (c *Client) UpdateUser(ctx context.Context, id string, payload admin.UpdateUserPayload) error {
	return c.getData(ctx, http.MethodPut, "/admin/user/update/"+url.PathEscape(id), nil, payload, nil)
}

// UpdateUserStatus activates or deactivates a user.
func (c *Client) UpdateUserStatus(ctx context.Context, id string, status admin.UserStatus) error {
	path := "/admin/user/update/" + url.PathEscape(id) + "/status"
	return c.getData(ctx, http.MethodPatch, path, nil, admin.UpdateStatusPayload{Status: status}, nil)
}

// CreateSalesAgent creates a sales agent account.
func (c *Client) CreateSalesAgent(ctx context.Context, payload admin.SalesAgentPayload) (string, error) {
	return c.create(ctx, "/admin/user/create/sales-agent", payload)
}

// UpdateSalesAgent updates a sales agent including commission and goal.
func (c *Client) UpdateSalesAgent(ctx context.Context, id string, payload admin.SalesAgentPayload) error {
	return c.getData(ctx, http.MethodPut, "/admin/user/update/sales-agent/"+url.PathEscape(id), nil, payload, nil)
}

// GetProfile fetches the signed-in user's own profile.
func (c *Client) GetProfile(ctx context.Context) (*admin.User, error) {
	var u admin.User
	if err := c.getData(ctx, http.MethodGet, "/shared/user/profile", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile updates the signed-in user's own profile.
func (c *Client) UpdateProfile(ctx context.Context, payload admin.UpdateProfilePayload) error {
	return c.getData(ctx, http.MethodPut, "/shared/user/profile/update", nil, payload, nil)
}
