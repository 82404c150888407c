package ui

import "github.com/shopspring/decimal"

// money renders an amount as dollars and cents, e.g. "$12.50" or "-$3.00".
func money(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
