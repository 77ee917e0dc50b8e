package analysis

import "github.com/shopspring/decimal"

// Every derived figure is rounded to two places with round-half-to-even.
// Division is done in decimal so the tie case is decided on the exact ratio
// rather than on a binary float approximation of it.
const roundPlaces = 2

var hundred = decimal.NewFromInt(100)

// Round2 rounds v to two decimal places, half to even.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(roundPlaces).InexactFloat64()
}

// Ratio returns num/den rounded to two places, or 0 when den is 0.
func Ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(num)).
		Div(decimal.NewFromInt(int64(den))).
		RoundBank(roundPlaces).
		InexactFloat64()
}

// Percent returns 100*part/whole rounded to two places, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole))).
		RoundBank(roundPlaces).
		InexactFloat64()
}
