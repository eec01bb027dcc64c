package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-engine/internal/domain/model"
)

// MonthlyInstallment computes the fixed monthly payment for a reducing-balance
// loan:
//
//	monthlyRate = annualRatePct / 100 / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate takes the straight-division path: the compound formula divides
// by (1+r)^n - 1, which is zero there. The power term is evaluated in float64
// and the result converted back to decimal rounded to 2 places, matching how
// monetary arithmetic is handled elsewhere in this package.
func MonthlyInstallment(principal decimal.Decimal, annualRatePct decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: principal must be positive", model.ErrValidation)
	}
	if tenureMonths < 1 {
		return decimal.Zero, fmt.Errorf("%w: tenure must be at least one month", model.ErrValidation)
	}
	if annualRatePct.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: interest rate cannot be negative", model.ErrValidation)
	}

	monthlyRate := annualRatePct.InexactFloat64() / 100.0 / 12.0
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(tenureMonths))).Round(2), nil
	}

	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	payment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2), nil
}
