package service

import "github.com/shopspring/decimal"

var (
	floorMid = decimal.NewFromInt(12)
	floorLow = decimal.NewFromInt(16)
)

// CorrectRate maps a credit score to the minimum annual rate the customer
// qualifies for. The first matching band applies:
//
//	score > 50        no floor
//	30 < score <= 50  floor of 12%
//	10 < score <= 30  floor of 16%
//	score <= 10       ineligible at any rate
//
// For an ineligible score the requested rate is still reported back for
// transparency; callers must not quote an installment from it.
func CorrectRate(score int, requestedRate decimal.Decimal) (decimal.Decimal, bool) {
	switch {
	case score > 50:
		return requestedRate, true
	case score > 30:
		return decimal.Max(requestedRate, floorMid), true
	case score > 10:
		return decimal.Max(requestedRate, floorLow), true
	default:
		return requestedRate, false
	}
}
