package rest

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-engine/internal/application/dto"
	"github.com/creditdesk/credit-engine/internal/domain/model"
)

// validateRegister checks registration input shape before it reaches the
// domain constructor, so malformed requests read as 400s with a field name.
func validateRegister(req dto.RegisterCustomerRequest) error {
	if req.FirstName == "" {
		return fmt.Errorf("%w: first_name is required", model.ErrValidation)
	}
	if req.LastName == "" {
		return fmt.Errorf("%w: last_name is required", model.ErrValidation)
	}
	if req.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", model.ErrValidation)
	}
	if req.PhoneNumber <= 0 {
		return fmt.Errorf("%w: phone_number is required", model.ErrValidation)
	}
	if req.MonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: monthly_income must be positive", model.ErrValidation)
	}
	return nil
}

// validateLoanRequest covers both the eligibility check and the creation
// flow; the two operations accept the same shape.
func validateLoanRequest(req dto.LoanRequest) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id is required", model.ErrValidation)
	}
	if req.LoanAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: loan_amount must be positive", model.ErrValidation)
	}
	if req.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest_rate cannot be negative", model.ErrValidation)
	}
	if req.TenureMonths < 1 {
		return fmt.Errorf("%w: tenure must be at least one month", model.ErrValidation)
	}
	return nil
}
