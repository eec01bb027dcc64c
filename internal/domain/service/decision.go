package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-engine/internal/domain/model"
)

// Rejection and approval messages surfaced to callers.
const (
	ReasonApproved         = "loan approved"
	ReasonDebtExceedsLimit = "debt exceeds limit"
	ReasonLowScoreOrEMI    = "low credit score or high EMI burden"
)

// maxEMIBurden caps the total installment load at half the monthly salary.
var maxEMIBurden = decimal.NewFromFloat(0.5)

// Snapshot is the customer state a decision is computed from. It is read
// once by the caller and never shared; the engine does not touch live state.
type Snapshot struct {
	Customer model.Customer
	Loans    []model.Loan
}

// LoanTerms are the requested terms of a new loan.
type LoanTerms struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TenureMonths int
}

// Decision is the structured outcome of an evaluation. It is always returned
// for well-formed input; rejection is a value, not an error.
type Decision struct {
	Approved           bool
	Score              int
	RequestedRate      decimal.Decimal
	CorrectedRate      decimal.Decimal
	MonthlyInstallment decimal.Decimal
	Reason             string
}

// Engine combines scoring, rate correction and installment computation into
// an approve/reject decision. Both entry points share one evaluation path so
// identical inputs can never produce divergent decisions.
type Engine struct{}

// NewEngine returns a stateless decision engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CheckEligibility answers the read-only eligibility question. The
// debt-vs-limit rule is not checked separately here: aggregate principal
// beyond the limit forces the score to 0, which makes the rate band
// ineligible. Keep that single path; a second explicit check would have to
// be maintained in lockstep.
func (e *Engine) CheckEligibility(snap Snapshot, terms LoanTerms, now time.Time) (Decision, error) {
	return e.evaluate(snap, terms, now, false)
}

// EvaluateCreation runs the identical computation for the loan-creation flow,
// where debt already beyond the limit is rejected up front with its own
// message so the caller can tell the two rejection causes apart. The
// persistence side effect of an approval belongs to the caller, which must
// hold the customer lock across read, decision and write.
func (e *Engine) EvaluateCreation(snap Snapshot, terms LoanTerms, now time.Time) (Decision, error) {
	return e.evaluate(snap, terms, now, true)
}

func (e *Engine) evaluate(snap Snapshot, terms LoanTerms, now time.Time, rejectDebtEarly bool) (Decision, error) {
	if rejectDebtEarly {
		totalPrincipal := decimal.Zero
		for _, l := range snap.Loans {
			totalPrincipal = totalPrincipal.Add(l.Amount)
		}
		if totalPrincipal.GreaterThan(snap.Customer.ApprovedLimit) {
			return Decision{
				Approved:      false,
				Score:         0,
				RequestedRate: terms.InterestRate,
				CorrectedRate: terms.InterestRate,
				Reason:        ReasonDebtExceedsLimit,
			}, nil
		}
	}

	score := CreditScore(snap.Customer.ApprovedLimit, snap.Loans, now)
	corrected, eligible := CorrectRate(score, terms.InterestRate)
	approved := eligible

	installment, err := MonthlyInstallment(terms.Amount, corrected, terms.TenureMonths)
	if err != nil {
		return Decision{}, err
	}

	// Total burden uses installments recomputed from each loan's own terms,
	// not the stored installment column, so the decision stays consistent
	// even if persisted values have drifted.
	existing := decimal.Zero
	for _, l := range snap.Loans {
		emi, err := MonthlyInstallment(l.Amount, l.InterestRate, l.TenureMonths)
		if err != nil {
			return Decision{}, fmt.Errorf("recompute installment for loan %d: %w", l.ID, err)
		}
		existing = existing.Add(emi)
	}
	if existing.Add(installment).GreaterThan(snap.Customer.MonthlySalary.Mul(maxEMIBurden)) {
		approved = false
	}

	reason := ReasonApproved
	if !approved {
		reason = ReasonLowScoreOrEMI
	}

	return Decision{
		Approved:           approved,
		Score:              score,
		RequestedRate:      terms.InterestRate,
		CorrectedRate:      corrected,
		MonthlyInstallment: installment,
		Reason:             reason,
	}, nil
}
