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
)

// RegisterCustomerUseCase creates a customer profile with its derived
// approved limit.
type RegisterCustomerUseCase struct {
	customers port.CustomerRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(customers port.CustomerRepository, publisher port.EventPublisher, logger *slog.Logger) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{customers: customers, publisher: publisher, logger: logger}
}

// Execute validates input, derives the approved limit and persists the
// customer.
func (uc *RegisterCustomerUseCase) Execute(ctx context.Context, req dto.RegisterCustomerRequest) (dto.CustomerResponse, error) {
	customer, err := model.NewCustomer(req.FirstName, req.LastName, req.PhoneNumber, req.Age, req.MonthlyIncome)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("create customer: %w", err)
	}

	id, err := uc.customers.Create(ctx, customer)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("save customer: %w", err)
	}
	customer.ID = id

	uc.publish(ctx, event.NewCustomerRegistered(id, customer.ApprovedLimit))

	return dto.CustomerResponse{
		CustomerID:    customer.ID,
		Name:          customer.FullName(),
		Age:           customer.Age,
		MonthlyIncome: customer.MonthlySalary,
		ApprovedLimit: customer.ApprovedLimit,
		PhoneNumber:   customer.PhoneNumber,
	}, nil
}

// publish sends events best-effort: a registration is not rolled back
// because the broker is down.
func (uc *RegisterCustomerUseCase) publish(ctx context.Context, events ...event.DomainEvent) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := uc.publisher.Publish(pubCtx, events...); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish events", "error", err)
	}
}
