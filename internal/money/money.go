package money

import "github.com/shopspring/decimal"

// FormatCents renders minor units as USD, e.g. 10000 -> "$100.00".
func FormatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}

// AverageCents divides total by count, rounding half away from zero to whole cents.
func AverageCents(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(count)).Round(0).IntPart()
}
