package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/infrastructure/apiclient"
	"flightadmin/interfaces/web/presenters"
	"flightadmin/interfaces/web/templates/components/ui"
	"flightadmin/interfaces/web/templates/pages"
)

// BookingHandlers serves the booking screens.
type BookingHandlers struct {
	Base
	bookings  *application.BookingService
	presenter *presenters.BookingPresenter

	Bookings *ListScreen[admin.Booking]
}

// NewBookingHandlers creates the booking handlers.
func NewBookingHandlers(base Base, bookings *application.BookingService, presenter *presenters.BookingPresenter) *BookingHandlers {
	return &BookingHandlers{
		Base:      base,
		bookings:  bookings,
		presenter: presenter,
		Bookings: NewListScreen(base, "bookings-list", "/booking", "Bookings", "bookings",
			func(s *application.ScreenSet) *application.ListController[admin.Booking] { return s.Bookings },
			presenter.List),
	}
}

// Mount registers the booking routes on r.
func (h *BookingHandlers) Mount(r chi.Router) {
	h.Bookings.Mount(r)
	r.Get("/booking/{id}", h.Detail)
}

// Detail shows one booking.
func (h *BookingHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apiclient.IsNotFound(err) {
			RenderStatus(r.Context(), w, r, http.StatusNotFound,
				pages.DetailPage(h.layout(r, "Booking", "bookings"), h.presenter.Detail(nil)))
			return
		}
		h.fail(w, r, "Load booking", err, func(toast ui.ToastNotificationView) {
			h.errorPage(w, r, "Booking", "/booking", toast)
		})
		return
	}
	vm := h.presenter.Detail(booking)
	RenderResponse(r.Context(), w, r, pages.DetailPage(h.layout(r, vm.Title, "bookings"), vm))
}
