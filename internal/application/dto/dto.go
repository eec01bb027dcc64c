package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RegisterCustomerRequest carries the data needed to register a customer.
type RegisterCustomerRequest struct {
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Age           int             `json:"age"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	PhoneNumber   int64           `json:"phone_number"`
}

// LoanRequest carries the requested terms for both the eligibility check and
// the creation flow; the two operations accept identical input.
type LoanRequest struct {
	CustomerID   int64           `json:"customer_id"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TenureMonths int             `json:"tenure"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// CustomerResponse is the external representation of a registered customer.
type CustomerResponse struct {
	CustomerID    int64           `json:"customer_id"`
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	PhoneNumber   int64           `json:"phone_number"`
}

// EligibilityResponse is the outcome of the read-only eligibility check.
type EligibilityResponse struct {
	CustomerID            int64           `json:"customer_id"`
	Approval              bool            `json:"approval"`
	InterestRate          decimal.Decimal `json:"interest_rate"`
	CorrectedInterestRate decimal.Decimal `json:"corrected_interest_rate"`
	TenureMonths          int             `json:"tenure"`
	MonthlyInstallment    decimal.Decimal `json:"monthly_installment"`
}

// CreateLoanResponse is the outcome of the creation flow. LoanID and
// MonthlyInstallment are set only on approval.
type CreateLoanResponse struct {
	LoanID             *int64           `json:"loan_id"`
	CustomerID         int64            `json:"customer_id"`
	LoanApproved       bool             `json:"loan_approved"`
	Message            string           `json:"message"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment"`
}

// CustomerSummary is the minimal customer projection embedded in a loan view.
type CustomerSummary struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber int64  `json:"phone_number"`
	Age         int    `json:"age"`
}

// LoanDetailResponse is the external representation of a single loan.
type LoanDetailResponse struct {
	LoanID             int64           `json:"loan_id"`
	Customer           CustomerSummary `json:"customer"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TenureMonths       int             `json:"tenure"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
}

// CustomerLoanResponse is one entry in a customer's loan listing.
type CustomerLoanResponse struct {
	LoanID             int64           `json:"loan_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	RepaymentsLeft     int             `json:"repayments_left"`
}
