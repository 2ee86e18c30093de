package admin

// Country as returned by /system/country/list.
type Country struct {
	ID          string    `json:"_id"`
	Deleted     bool      `json:"deleted,omitempty"`
	CreatedAt   Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   Timestamp `json:"updatedAt,omitempty"`
	Name        string    `json:"name"`
	Alpha2Code  string    `json:"alpha2Code"`
	Alpha3Code  string    `json:"alpha3Code,omitempty"`
	NumericCode string    `json:"numericCode,omitempty"`
	FipsCode    string    `json:"fipsCode,omitempty"`
	PhoneCode   []string  `json:"phoneCode,omitempty"`
	Continent   string    `json:"continent,omitempty"`
	TimeZone    string    `json:"timeZone,omitempty"`
	Currency    string    `json:"currency,omitempty"`
}

func (c Country) Identity() string { return c.ID }
