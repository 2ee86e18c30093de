package apiclient

import (
	"context"

	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
)

// ListCountries fetches /system/country/list with the admin API key.
func (c *Client) ListCountries(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Country], error) {
	return FetchList[admin.Country](ctx, c.admin(), "countries", "/system/country/list", q)
}
