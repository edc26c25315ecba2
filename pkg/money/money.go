// Package money holds the presentation-side rounding helpers. The analytics
// core accumulates in full float precision; amounts are only rounded here,
// at the edge, when they leave the API.
package money

import "github.com/shopspring/decimal"

// RoundWhole rounds an amount to the nearest whole unit of currency.
func RoundWhole(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// Round2 rounds an amount to two decimal places, for foreign-currency unit
// prices.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RoundShare rounds a fractional share to four decimal places for display.
func RoundShare(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}
