package presenters

import (
	"strconv"
	"strings"

	"flightadmin/domain/admin"
)

const dateLayout = "Jan 2, 2006"

// Humanize turns an API enum such as SALES_AGENT into "Sales Agent".
func Humanize(v string) string {
	parts := strings.FieldsFunc(strings.ToLower(v), func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// FormatDate renders an API timestamp for tables, or "-" when missing.
func FormatDate(t admin.Timestamp) string {
	if t == "" {
		return "-"
	}
	return t.Format(dateLayout)
}

// FormatAmount renders an amount with its currency.
func FormatAmount(amount admin.FlexString, currency string) string {
	if amount == "" {
		return "-"
	}
	text := amount.String()
	if v, ok := amount.Float(); ok {
		text = strconv.FormatFloat(v, 'f', 2, 64)
	}
	if currency == "" {
		return text
	}
	return text + " " + currency
}

// FormatNumber renders an optional number, or "-" when unset.
func FormatNumber(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// orDash substitutes "-" for empty text.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// statusBadge picks the badge color of a status value.
func statusBadge(status string) string {
	switch status {
	case string(admin.UserStatusActive), string(admin.PaymentPaid), "Active":
		return "green"
	case string(admin.PaymentPending):
		return "amber"
	default:
		return "red"
	}
}
