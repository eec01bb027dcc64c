package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// tenureMonth is the conventional month length used for loan end dates.
const tenureMonth = 30 * 24 * time.Hour

// Loan is immutable once created except for EMIsPaidOnTime, which an
// external payment processor advances. The monthly installment is fixed at
// creation from the corrected rate.
type Loan struct {
	ID                 int64
	CustomerID         int64
	Amount             decimal.Decimal
	TenureMonths       int
	InterestRate       decimal.Decimal
	MonthlyInstallment decimal.Decimal
	EMIsPaidOnTime     int
	StartDate          time.Time
	EndDate            time.Time
}

// NewLoan builds a loan starting today with no repayment history. The end
// date follows the tenure x 30 days convention. The ID is assigned by the
// repository on insert.
func NewLoan(customerID int64, amount decimal.Decimal, ratePct decimal.Decimal, tenureMonths int, installment decimal.Decimal, now time.Time) (Loan, error) {
	if customerID <= 0 {
		return Loan{}, fmt.Errorf("%w: customer id is required", ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, fmt.Errorf("%w: loan amount must be positive", ErrValidation)
	}
	if tenureMonths < 1 {
		return Loan{}, fmt.Errorf("%w: tenure must be at least one month", ErrValidation)
	}
	if ratePct.IsNegative() {
		return Loan{}, fmt.Errorf("%w: interest rate cannot be negative", ErrValidation)
	}

	start := now.UTC().Truncate(24 * time.Hour)
	return Loan{
		CustomerID:         customerID,
		Amount:             amount,
		TenureMonths:       tenureMonths,
		InterestRate:       ratePct,
		MonthlyInstallment: installment,
		EMIsPaidOnTime:     0,
		StartDate:          start,
		EndDate:            start.Add(time.Duration(tenureMonths) * tenureMonth),
	}, nil
}
