package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/creditdesk/credit-engine/internal/application/dto"
	"github.com/creditdesk/credit-engine/internal/domain/port"
	"github.com/creditdesk/credit-engine/internal/domain/service"
)

// CheckEligibilityUseCase answers the read-only eligibility question. It
// mutates nothing: re-running it against an unchanged store yields an
// identical decision.
type CheckEligibilityUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	engine    *service.Engine
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(customers port.CustomerRepository, loans port.LoanRepository, engine *service.Engine) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{customers: customers, loans: loans, engine: engine}
}

// Execute loads the customer snapshot and evaluates the requested terms.
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, req dto.LoanRequest) (dto.EligibilityResponse, error) {
	customer, err := uc.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("find customer: %w", err)
	}
	loans, err := uc.loans.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("find loans: %w", err)
	}

	decision, err := uc.engine.CheckEligibility(
		service.Snapshot{Customer: customer, Loans: loans},
		service.LoanTerms{Amount: req.LoanAmount, InterestRate: req.InterestRate, TenureMonths: req.TenureMonths},
		time.Now().UTC(),
	)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("evaluate: %w", err)
	}

	return dto.EligibilityResponse{
		CustomerID:            req.CustomerID,
		Approval:              decision.Approved,
		InterestRate:          decision.RequestedRate,
		CorrectedInterestRate: decision.CorrectedRate,
		TenureMonths:          req.TenureMonths,
		MonthlyInstallment:    decision.MonthlyInstallment,
	}, nil
}
