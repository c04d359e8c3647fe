// Package money holds the arithmetic conventions shared by the loan and
// savings ledgers. All amounts are decimal.Decimal; float64 drifts under
// repeated interest accrual.
package money

import (
	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual percentage rate to a monthly fraction:
// 5 -> 0.0041666... (5% / 100 / 12).
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(monthsPerYear)
}

// AnnualFraction converts an annual percentage rate to a yearly fraction:
// 12 -> 0.12.
func AnnualFraction(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred)
}

// TermYears expresses a duration in months as a fraction of a year.
func TermYears(months int) decimal.Decimal {
	return decimal.NewFromInt(int64(months)).Div(monthsPerYear)
}

// RoundToUnit rounds to a whole currency unit, half away from zero.
// Installment amounts use this so that the derived terms are reproducible.
func RoundToUnit(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}
