package application

import (
	"context"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
)

// BookingService serves booking details. Listing goes through the screen controller.
type BookingService struct {
	bookings contracts.BookingGateway
}

// NewBookingService creates a booking service.
func NewBookingService(bookings contracts.BookingGateway) *BookingService {
	return &BookingService{bookings: bookings}
}

// GetBooking returns one booking.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*admin.Booking, error) {
	return s.bookings.GetBooking(ctx, id)
}
