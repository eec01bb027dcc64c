package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/creditdesk/credit-engine/internal/application/dto"
	"github.com/creditdesk/credit-engine/internal/domain/event"
	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/domain/port"
	"github.com/creditdesk/credit-engine/internal/domain/service"
)

// CreateLoanUseCase runs the creation flow: the same evaluation as the
// eligibility check, plus the loan insert and debt increment when approved.
// Read, decision and write execute under the per-customer lock so two
// concurrent requests cannot both approve against the same debt reading.
type CreateLoanUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
	engine    *service.Engine
	logger    *slog.Logger
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(uow port.UnitOfWork, publisher port.EventPublisher, engine *service.Engine, logger *slog.Logger) *CreateLoanUseCase {
	return &CreateLoanUseCase{uow: uow, publisher: publisher, engine: engine, logger: logger}
}

// Execute evaluates the requested terms and commits the approval side
// effects atomically. On rejection nothing is written.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.LoanRequest) (dto.CreateLoanResponse, error) {
	var (
		resp   dto.CreateLoanResponse
		events []event.DomainEvent
	)

	err := uc.uow.WithinCustomerTx(ctx, req.CustomerID, func(r port.Repos, customer model.Customer) error {
		loans, err := r.Loans.FindByCustomerID(ctx, req.CustomerID)
		if err != nil {
			return fmt.Errorf("find loans: %w", err)
		}

		now := time.Now().UTC()
		decision, err := uc.engine.EvaluateCreation(
			service.Snapshot{Customer: customer, Loans: loans},
			service.LoanTerms{Amount: req.LoanAmount, InterestRate: req.InterestRate, TenureMonths: req.TenureMonths},
			now,
		)
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}

		if !decision.Approved {
			resp = dto.CreateLoanResponse{
				CustomerID:   req.CustomerID,
				LoanApproved: false,
				Message:      decision.Reason,
			}
			events = append(events, event.NewLoanRejected(req.CustomerID, req.LoanAmount, decision.Score, decision.Reason))
			return nil
		}

		loan, err := model.NewLoan(req.CustomerID, req.LoanAmount, decision.CorrectedRate, req.TenureMonths, decision.MonthlyInstallment, now)
		if err != nil {
			return fmt.Errorf("create loan: %w", err)
		}
		loanID, err := r.Loans.Create(ctx, loan)
		if err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		if err := r.Customers.AddDebt(ctx, req.CustomerID, req.LoanAmount); err != nil {
			return fmt.Errorf("update debt: %w", err)
		}

		installment := decision.MonthlyInstallment
		resp = dto.CreateLoanResponse{
			LoanID:             &loanID,
			CustomerID:         req.CustomerID,
			LoanApproved:       true,
			Message:            decision.Reason,
			MonthlyInstallment: &installment,
		}
		events = append(events, event.NewLoanApproved(loanID, req.CustomerID, req.LoanAmount, decision.CorrectedRate, req.TenureMonths, installment))
		return nil
	})
	if err != nil {
		return dto.CreateLoanResponse{}, err
	}

	// Events go out only after the transaction has committed.
	uc.publish(ctx, events...)

	return resp, nil
}

func (uc *CreateLoanUseCase) publish(ctx context.Context, events ...event.DomainEvent) {
	if len(events) == 0 {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := uc.publisher.Publish(pubCtx, events...); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish events", "error", err)
	}
}
