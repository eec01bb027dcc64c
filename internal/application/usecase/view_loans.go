package usecase

import (
	"context"
	"fmt"

	"github.com/creditdesk/credit-engine/internal/application/dto"
	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/domain/port"
)

// LoanDetailCache is a read-through cache over assembled loan views. Both
// methods are best-effort; a miss or a cache failure falls back to the
// repositories.
type LoanDetailCache interface {
	Get(ctx context.Context, loanID int64) (dto.LoanDetailResponse, bool)
	Set(ctx context.Context, loanID int64, detail dto.LoanDetailResponse)
}

// GetLoanUseCase retrieves a loan together with a minimal customer
// projection.
type GetLoanUseCase struct {
	loans     port.LoanRepository
	customers port.CustomerRepository
	cache     LoanDetailCache
}

// NewGetLoanUseCase wires dependencies. cache may be nil.
func NewGetLoanUseCase(loans port.LoanRepository, customers port.CustomerRepository, cache LoanDetailCache) *GetLoanUseCase {
	return &GetLoanUseCase{loans: loans, customers: customers, cache: cache}
}

// Execute returns the loan view, consulting the cache first.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID int64) (dto.LoanDetailResponse, error) {
	if uc.cache != nil {
		if detail, ok := uc.cache.Get(ctx, loanID); ok {
			return detail, nil
		}
	}

	loan, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find loan: %w", err)
	}
	customer, err := uc.customers.FindByID(ctx, loan.CustomerID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find customer: %w", err)
	}

	detail := dto.LoanDetailResponse{
		LoanID: loan.ID,
		Customer: dto.CustomerSummary{
			ID:          customer.ID,
			FirstName:   customer.FirstName,
			LastName:    customer.LastName,
			PhoneNumber: customer.PhoneNumber,
			Age:         customer.Age,
		},
		LoanAmount:         loan.Amount,
		InterestRate:       loan.InterestRate,
		MonthlyInstallment: loan.MonthlyInstallment,
		TenureMonths:       loan.TenureMonths,
		StartDate:          loan.StartDate,
		EndDate:            loan.EndDate,
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, loanID, detail)
	}
	return detail, nil
}

// ListCustomerLoansUseCase lists every loan a customer holds.
type ListCustomerLoansUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
}

// NewListCustomerLoansUseCase wires dependencies.
func NewListCustomerLoansUseCase(customers port.CustomerRepository, loans port.LoanRepository) *ListCustomerLoansUseCase {
	return &ListCustomerLoansUseCase{customers: customers, loans: loans}
}

// Execute returns the customer's loans; an empty list is a valid answer for
// a known customer.
func (uc *ListCustomerLoansUseCase) Execute(ctx context.Context, customerID int64) ([]dto.CustomerLoanResponse, error) {
	if _, err := uc.customers.FindByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	loans, err := uc.loans.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find loans: %w", err)
	}

	out := make([]dto.CustomerLoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toCustomerLoan(l))
	}
	return out, nil
}

func toCustomerLoan(l model.Loan) dto.CustomerLoanResponse {
	return dto.CustomerLoanResponse{
		LoanID:             l.ID,
		LoanAmount:         l.Amount,
		InterestRate:       l.InterestRate,
		MonthlyInstallment: l.MonthlyInstallment,
		RepaymentsLeft:     l.TenureMonths - l.EMIsPaidOnTime,
	}
}
