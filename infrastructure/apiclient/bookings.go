package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"flightadmin/domain/admin"
	"flightadmin/domain/listing"
)

// ListBookings fetches a page of /admin/bookings/get-all.
func (c *Client) ListBookings(ctx context.Context, q listing.ListQuery) (*listing.ListResult[admin.Booking], error) {
	return FetchList[admin.Booking](ctx, c, "bookings", "/admin/bookings/get-all", q)
}

// GetBooking fetches one booking with the booker expanded.
func (c *Client) GetBooking(ctx context.Context, id string) (*admin.Booking, error) {
	var b admin.Booking
	if err := c.getData(ctx, http.MethodGet, "/admin/bookings/get/"+url.PathEscape(id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
