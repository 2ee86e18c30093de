package admin

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// RateKind names one of the global rate settings.
type RateKind string

const (
	RateMarkup RateKind = "markup-rate"
	RateTax    RateKind = "tax-rate"
)

// RateKinds lists the editable rates in display order.
func RateKinds() []RateKind {
	return []RateKind{RateMarkup, RateTax}
}

// Valid reports whether k names a known rate.
func (k RateKind) Valid() bool {
	return k == RateMarkup || k == RateTax
}

// Title is the human label of the rate.
func (k RateKind) Title() string {
	switch k {
	case RateMarkup:
		return "Markup Rate"
	case RateTax:
		return "Tax Rate"
	default:
		return string(k)
	}
}

// ErrInvalidRate is returned for a rate that is not a number of 0 or greater.
var ErrInvalidRate = errors.New("please enter a valid number (0 or greater)")

// Rate is a percentage setting. Set is false when the backend has no value yet.
type Rate struct {
	Kind  RateKind
	Value float64
	Set   bool
}

// ParseRate parses a rate entered as text.
func ParseRate(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidRate
	}
	return v, nil
}

// RateValue is the body and payload of the configuration endpoints.
type RateValue struct {
	Value float64 `json:"value"`
}
