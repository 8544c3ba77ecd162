package shared

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DollarsToCents converts a decimal dollar amount into integer cents,
// rounding half away from zero. All persisted amounts use this
// representation; the conversion happens exactly once, at the API boundary.
func DollarsToCents(dollars decimal.Decimal) int64 {
	return dollars.Mul(hundred).Round(0).IntPart()
}

// CentsToDollars converts integer cents back to a decimal dollar amount.
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// FormatCents renders integer cents as a dollar string for user-facing
// messages, e.g. 12050 -> "$120.50".
func FormatCents(cents int64) string {
	return "$" + CentsToDollars(cents).StringFixed(2)
}
