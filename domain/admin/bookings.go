package admin

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PaymentStatus of a booking.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentPending  PaymentStatus = "PENDING"
	PaymentCanceled PaymentStatus = "CANCELED"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentExpired  PaymentStatus = "EXPIRED"
)

// PaymentStatuses lists the statuses the booking filter offers.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPaid, PaymentPending, PaymentCanceled, PaymentRefunded, PaymentExpired}
}

// Traveller is one passenger on a booking.
type Traveller struct {
	FullName               string    `json:"fullName,omitempty"`
	Email                  string    `json:"email,omitempty"`
	Gender                 string    `json:"gender,omitempty"`
	PhoneNumber            string    `json:"phoneNumber,omitempty"`
	PassengerType          string    `json:"passengerType,omitempty"`
	DOB                    Timestamp `json:"dob,omitempty"`
	PassportNumber         string    `json:"passportNumber,omitempty"`
	PassportIssuingCountry string    `json:"passportIssuingCountry,omitempty"`
	PassportExpiry         Timestamp `json:"passportExpiry,omitempty"`
}

// Booker identifies who made a booking. List responses send only the user id,
// detail responses send the user object.
type Booker struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (b *Booker) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = Booker{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*b = Booker{ID: id}
		return nil
	}
	type plain Booker
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = Booker(p)
	return nil
}

// Display is the best human label for the booker.
func (b Booker) Display() string {
	switch {
	case b.Name != "":
		return b.Name
	case b.Email != "":
		return b.Email
	default:
		return b.ID
	}
}

// Booking is a flight booking as the admin endpoints return it.
type Booking struct {
	ID                               string        `json:"_id"`
	Deleted                          bool          `json:"deleted,omitempty"`
	IsActive                         bool          `json:"isActive,omitempty"`
	CreatedAt                        Timestamp     `json:"createdAt,omitempty"`
	UpdatedAt                        Timestamp     `json:"updatedAt,omitempty"`
	BookedBy                         Booker        `json:"bookedBy"`
	PNR                              string        `json:"pnr"`
	BookerType                       string        `json:"bookerType"`
	TravellerInfo                    []Traveller   `json:"travellerInfo"`
	PaymentStatus                    PaymentStatus `json:"paymentStatus"`
	BasePayment                      FlexString    `json:"basePayment"`
	UserPaymentCurrency              string        `json:"userPaymentCurrency"`
	UserPaymentExpirationDate        Timestamp     `json:"userPaymentExpirationDate,omitempty"`
	PaymentAmountInETB               FlexString    `json:"paymentAmountInETB,omitempty"`
	PaymentAmountInPreferredCurrency FlexString    `json:"paymentAmountInPreferredCurrency,omitempty"`
	MarkupRateInETB                  FlexString    `json:"markupRateInETB,omitempty"`
	PaymentCommissionInETB           FlexString    `json:"paymentCommissionInETB,omitempty"`
	AirPricingSolutionTotalPrice     FlexString    `json:"airPricingSolutionTotalPrice,omitempty"`
}

func (b Booking) Identity() string { return b.ID }

// TravellerNames joins the travellers' names for table display.
func (b Booking) TravellerNames() string {
	names := make([]string, 0, len(b.TravellerInfo))
	for _, t := range b.TravellerInfo {
		if t.FullName != "" {
			names = append(names, t.FullName)
		}
	}
	return strings.Join(names, ", ")
}
