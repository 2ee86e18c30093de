package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"flightadmin/domain/admin"
)

// GetRate reads one rate. A 404 or an empty data block means the rate was
// never configured and comes back unset rather than as an error.
func (c *Client) GetRate(ctx context.Context, kind admin.RateKind) (admin.Rate, error) {
	if !kind.Valid() {
		return admin.Rate{}, fmt.Errorf("unknown rate %q", kind)
	}
	var raw json.RawMessage
	err := c.getData(ctx, http.MethodGet, "/admin/configuration/get/"+string(kind), nil, nil, &raw)
	if IsNotFound(err) {
		return admin.Rate{Kind: kind}, nil
	}
	if err != nil {
		return admin.Rate{}, err
	}
	if len(raw) == 0 {
		return admin.Rate{Kind: kind}, nil
	}
	var v struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return admin.Rate{}, fmt.Errorf("decode %s: %w", kind, err)
	}
	if v.Value == nil {
		return admin.Rate{Kind: kind}, nil
	}
	return admin.Rate{Kind: kind, Value: *v.Value, Set: true}, nil
}

// SaveRate creates or updates one rate.
func (c *Client) SaveRate(ctx context.Context, kind admin.RateKind, value float64) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown rate %q", kind)
	}
	path := "/admin/configuration/" + string(kind) + "/create-or-update"
	return c.getData(ctx, http.MethodPost, path, nil, admin.RateValue{Value: value}, nil)
}
