package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-engine/internal/domain/model"
)

var (
	hundred      = decimal.NewFromInt(100)
	lakh         = decimal.NewFromInt(100_000)
	onTimeWeight = decimal.NewFromInt(30)
	volumeCap    = decimal.NewFromInt(20)
)

// CreditScore summarizes repayment reliability and exposure as an integer in
// [0,100], recomputed per decision from the customer's approved limit and
// loan history.
//
// A customer whose aggregate principal already exceeds the approved limit
// scores 0 outright; no other adjustment applies. Otherwise the score starts
// at 100 and takes, in order: an on-time-repayment penalty of up to 30, a
// flat 20 penalty for holding more than 5 loans, a 10 bonus when any loan
// started in the current calendar year, and a volume bonus of
// min(20, total principal / 100,000).
//
// The accumulated value is truncated toward zero, not rounded (73.9 scores
// 73), then clamped to [0,100]. now is injected so scoring stays
// deterministic under test.
func CreditScore(approvedLimit decimal.Decimal, loans []model.Loan, now time.Time) int {
	totalPrincipal := decimal.Zero
	for _, l := range loans {
		totalPrincipal = totalPrincipal.Add(l.Amount)
	}

	if totalPrincipal.GreaterThan(approvedLimit) {
		return 0
	}

	score := hundred

	// On-time penalty. A customer with no history has nothing to be
	// penalized for; the tenure-defaults-to-1 guard only protects the ratio
	// against degenerate zero-tenure data.
	if len(loans) > 0 {
		totalTenure := int64(0)
		paidOnTime := int64(0)
		for _, l := range loans {
			totalTenure += int64(l.TenureMonths)
			paidOnTime += int64(l.EMIsPaidOnTime)
		}
		if totalTenure == 0 {
			totalTenure = 1
		}
		onTimeRatio := decimal.NewFromInt(paidOnTime).Div(decimal.NewFromInt(totalTenure))
		score = score.Sub(decimal.NewFromInt(1).Sub(onTimeRatio).Mul(onTimeWeight))
	}

	if len(loans) > 5 {
		score = score.Sub(decimal.NewFromInt(20))
	}

	for _, l := range loans {
		if l.StartDate.Year() == now.Year() {
			score = score.Add(decimal.NewFromInt(10))
			break
		}
	}

	volumeBonus := totalPrincipal.Div(lakh)
	if volumeBonus.GreaterThan(volumeCap) {
		volumeBonus = volumeCap
	}
	score = score.Add(volumeBonus)

	// Truncate toward zero, then clamp.
	truncated := score.IntPart()
	if truncated < 0 {
		return 0
	}
	if truncated > 100 {
		return 100
	}
	return int(truncated)
}
