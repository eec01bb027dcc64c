package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-engine/internal/domain/event"
	"github.com/creditdesk/credit-engine/internal/domain/model"
)

// CustomerRepository persists and retrieves customer profiles.
type CustomerRepository interface {
	// Create inserts a new customer and returns the assigned ID.
	Create(ctx context.Context, c model.Customer) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	// Upsert writes a customer under its caller-supplied ID, overwriting any
	// existing row. Used by bulk ingestion; re-ingesting an ID must not
	// duplicate.
	Upsert(ctx context.Context, c model.Customer) error
	// AddDebt increments the customer's current debt.
	AddDebt(ctx context.Context, id int64, amount decimal.Decimal) error
}

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	// Create inserts a new loan and returns the assigned ID.
	Create(ctx context.Context, l model.Loan) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Loan, error)
	FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error)
	// Upsert writes a loan under its caller-supplied ID, overwriting any
	// existing row.
	Upsert(ctx context.Context, l model.Loan) error
}

// Repos bundles the repositories handed to a unit-of-work callback. Inside
// the callback they are bound to the transaction.
type Repos struct {
	Customers CustomerRepository
	Loans     LoanRepository
}

// UnitOfWork scopes a read-decide-write sequence to one customer.
type UnitOfWork interface {
	// WithinCustomerTx runs fn in a transaction holding an exclusive lock on
	// the customer record, so concurrent creation requests for the same
	// customer serialize and cannot both pass the limit check on a stale
	// debt reading. fn receives the locked customer; returning an error
	// rolls everything back.
	WithinCustomerTx(ctx context.Context, customerID int64, fn func(r Repos, c model.Customer) error) error
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
