package presenters

import (
	"strconv"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/interfaces/web/templates/components/ui"
)

// BookingPresenter builds the booking views.
type BookingPresenter struct{}

// NewBookingPresenter creates a booking presenter.
func NewBookingPresenter() *BookingPresenter {
	return &BookingPresenter{}
}

// List builds the bookings listing region.
func (p *BookingPresenter) List(lc ListContext, snap application.ListSnapshot[admin.Booking]) ui.ListView {
	columns := []Column[admin.Booking]{
		{Label: "PNR", SortKey: "pnr", Cell: func(b admin.Booking) ui.CellView {
			return ui.CellView{Text: orDash(b.PNR), Href: "/booking/" + b.ID}
		}},
		{Label: "Booked by", Cell: func(b admin.Booking) ui.CellView {
			return ui.CellView{Text: orDash(b.BookedBy.Display())}
		}},
		{Label: "Travellers", Cell: func(b admin.Booking) ui.CellView {
			return ui.CellView{Text: orDash(b.TravellerNames())}
		}},
		{Label: "Payment", SortKey: "paymentStatus", Cell: func(b admin.Booking) ui.CellView {
			return ui.CellView{Text: Humanize(string(b.PaymentStatus)), Badge: statusBadge(string(b.PaymentStatus))}
		}},
		{Label: "Amount", Cell: func(b admin.Booking) ui.CellView {
			return ui.CellView{Text: FormatAmount(b.BasePayment, b.UserPaymentCurrency)}
		}},
		{Label: "Created", SortKey: "createdAt", Cell: func(b admin.Booking) ui.CellView {
			return ui.CellView{Text: FormatDate(b.CreatedAt)}
		}},
	}
	actions := func(b admin.Booking) []ui.ActionView {
		return []ui.ActionView{{Label: "View", Href: "/booking/" + b.ID}}
	}

	vm := BuildList(lc, snap, columns, actions)
	vm.Filters.SearchPlaceholder = "Search PNR"
	vm.Filters.Groups = []ui.FilterGroupView{
		SelectFilterGroup("paymentStatus", "Payment status", admin.PaymentStatuses(), snap.Query),
	}
	vm.EmptyText = "No bookings found."
	return vm
}

// Detail builds the booking record view. A nil booking renders the empty state.
func (p *BookingPresenter) Detail(b *admin.Booking) ui.DetailView {
	if b == nil {
		return ui.DetailView{Title: "Booking", Missing: true, EmptyText: "This booking does not exist.", BackLink: "/booking"}
	}
	vm := ui.DetailView{
		Title:    "Booking " + orDash(b.PNR),
		BackLink: "/booking",
		Rows: []ui.DetailRowView{
			{Label: "PNR", Value: orDash(b.PNR)},
			{Label: "Booked by", Value: orDash(b.BookedBy.Display())},
			{Label: "Booker email", Value: orDash(b.BookedBy.Email)},
			{Label: "Booker type", Value: orDash(Humanize(b.BookerType))},
			{Label: "Payment status", Value: Humanize(string(b.PaymentStatus)), Badge: statusBadge(string(b.PaymentStatus))},
			{Label: "Payment due", Value: FormatDate(b.UserPaymentExpirationDate)},
			{Label: "Created", Value: FormatDate(b.CreatedAt)},
		},
		Sections: []ui.DetailSectionView{{
			Title: "Payment",
			Rows: []ui.DetailRowView{
				{Label: "Base payment", Value: FormatAmount(b.BasePayment, b.UserPaymentCurrency)},
				{Label: "Amount in ETB", Value: FormatAmount(b.PaymentAmountInETB, "ETB")},
				{Label: "Amount in preferred currency", Value: FormatAmount(b.PaymentAmountInPreferredCurrency, b.UserPaymentCurrency)},
				{Label: "Markup in ETB", Value: FormatAmount(b.MarkupRateInETB, "ETB")},
				{Label: "Commission in ETB", Value: FormatAmount(b.PaymentCommissionInETB, "ETB")},
				{Label: "Fare total", Value: FormatAmount(b.AirPricingSolutionTotalPrice, "")},
			},
		}},
	}
	for i, t := range b.TravellerInfo {
		vm.Sections = append(vm.Sections, ui.DetailSectionView{
			Title: "Traveller " + strconv.Itoa(i+1),
			Rows: []ui.DetailRowView{
				{Label: "Name", Value: orDash(t.FullName)},
				{Label: "Type", Value: orDash(Humanize(t.PassengerType))},
				{Label: "Email", Value: orDash(t.Email)},
				{Label: "Phone", Value: orDash(t.PhoneNumber)},
				{Label: "Date of birth", Value: FormatDate(t.DOB)},
				{Label: "Passport", Value: orDash(t.PassportNumber)},
				{Label: "Passport country", Value: orDash(t.PassportIssuingCountry)},
				{Label: "Passport expiry", Value: FormatDate(t.PassportExpiry)},
			},
		})
	}
	return vm
}
