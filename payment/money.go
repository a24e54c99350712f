package payment

import "github.com/shopspring/decimal"

// Provider APIs take integer minor units, the rest of the engine works in
// decimal major units. These two functions are the only conversion site.

// ToMinorUnits converts a major-unit amount to minor units, round-half-up.
func ToMinorUnits(major float64) int64 {
	return decimal.NewFromFloat(major).Shift(2).Round(0).IntPart()
}

// FromMinorUnits renders a minor-unit amount as a major-unit string, e.g.
// 1999 -> "19.99".
func FromMinorUnits(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// FormatMajor renders a major-unit amount with two decimals for display.
func FormatMajor(major float64) string {
	return decimal.NewFromFloat(major).StringFixed(2)
}
