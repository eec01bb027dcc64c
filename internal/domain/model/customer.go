package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// limitMultiple and limitRounding define the approved-limit formula applied
// once at registration: 36x monthly income, rounded to the nearest 100,000.
var (
	limitMultiple = decimal.NewFromInt(36)
	limitRounding = decimal.NewFromInt(100_000)
)

// Customer is a borrower profile. ApprovedLimit is derived at registration
// and never changes afterwards; CurrentDebt is the only mutable field and is
// incremented when a loan is approved.
type Customer struct {
	ID            int64
	FirstName     string
	LastName      string
	PhoneNumber   int64
	Age           int
	MonthlySalary decimal.Decimal
	ApprovedLimit decimal.Decimal
	CurrentDebt   decimal.Decimal
}

// NewCustomer validates registration input and derives the approved limit.
// The ID is assigned by the repository on insert.
func NewCustomer(firstName, lastName string, phoneNumber int64, age int, monthlyIncome decimal.Decimal) (Customer, error) {
	if firstName == "" || lastName == "" {
		return Customer{}, fmt.Errorf("%w: first and last name are required", ErrValidation)
	}
	if phoneNumber <= 0 {
		return Customer{}, fmt.Errorf("%w: phone number is required", ErrValidation)
	}
	if age <= 0 {
		return Customer{}, fmt.Errorf("%w: age must be positive", ErrValidation)
	}
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return Customer{}, fmt.Errorf("%w: monthly income must be positive", ErrValidation)
	}

	return Customer{
		FirstName:     firstName,
		LastName:      lastName,
		PhoneNumber:   phoneNumber,
		Age:           age,
		MonthlySalary: monthlyIncome,
		ApprovedLimit: ApprovedLimit(monthlyIncome),
		CurrentDebt:   decimal.Zero,
	}, nil
}

// ApprovedLimit computes 36x the monthly income rounded to the nearest
// 100,000.
func ApprovedLimit(monthlyIncome decimal.Decimal) decimal.Decimal {
	return limitMultiple.Mul(monthlyIncome).Div(limitRounding).Round(0).Mul(limitRounding)
}

// FullName joins the name fields for display projections.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
