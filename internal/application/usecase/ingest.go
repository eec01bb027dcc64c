package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/domain/port"
)

// IngestUseCase loads bulk customer and loan records into the store. Records
// are upserted under their file-supplied IDs, so re-running an ingest
// overwrites rather than duplicates.
type IngestUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	logger    *slog.Logger
}

// NewIngestUseCase wires dependencies.
func NewIngestUseCase(customers port.CustomerRepository, loans port.LoanRepository, logger *slog.Logger) *IngestUseCase {
	return &IngestUseCase{customers: customers, loans: loans, logger: logger}
}

// UpsertCustomers writes customer records one by one and returns the count
// ingested. A bad record aborts the run so a partial file is noticed rather
// than silently skipped.
func (uc *IngestUseCase) UpsertCustomers(ctx context.Context, customers []model.Customer) (int, error) {
	for i, c := range customers {
		if c.ID <= 0 {
			return i, fmt.Errorf("%w: customer record %d has no id", model.ErrValidation, i)
		}
		if err := uc.customers.Upsert(ctx, c); err != nil {
			return i, fmt.Errorf("upsert customer %d: %w", c.ID, err)
		}
	}
	uc.logger.InfoContext(ctx, "customers ingested", "count", len(customers))
	return len(customers), nil
}

// UpsertLoans writes loan records one by one and returns the count ingested.
// Every loan must reference a customer that already exists.
func (uc *IngestUseCase) UpsertLoans(ctx context.Context, loans []model.Loan) (int, error) {
	for i, l := range loans {
		if l.ID <= 0 {
			return i, fmt.Errorf("%w: loan record %d has no id", model.ErrValidation, i)
		}
		if _, err := uc.customers.FindByID(ctx, l.CustomerID); err != nil {
			return i, fmt.Errorf("loan %d references customer %d: %w", l.ID, l.CustomerID, err)
		}
		if err := uc.loans.Upsert(ctx, l); err != nil {
			return i, fmt.Errorf("upsert loan %d: %w", l.ID, err)
		}
	}
	uc.logger.InfoContext(ctx, "loans ingested", "count", len(loans))
	return len(loans), nil
}
