package apiclient

import (
	"context"
	"errors"
	"net/http"

	"flightadmin/domain/admin"
)

// Login exchanges credentials for an access and refresh token pair.
func (c *Client) Login(ctx context.Context, creds admin.Credentials) (*admin.LoginResult, error) {
	var res admin.LoginResult
	if err := c.getData(ctx, http.MethodPost, "/public/auth/login/credential", nil, creds, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, errors.New("login response carried no access token")
	}
	return &res, nil
}
