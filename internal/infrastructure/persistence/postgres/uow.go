package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/domain/port"
)

// UnitOfWork implements port.UnitOfWork with row-level locking on the
// customer record.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a unit of work over the pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// WithinCustomerTx begins a transaction, locks the customer row with
// SELECT ... FOR UPDATE, and runs fn with transaction-bound repositories.
// Concurrent creation requests for the same customer queue on the row lock;
// requests for different customers proceed in parallel.
func (u *UnitOfWork) WithinCustomerTx(ctx context.Context, customerID int64, fn func(r port.Repos, c model.Customer) error) error {
	return WithTransaction(ctx, u.pool, func(tx pgx.Tx) error {
		customers := NewCustomerRepo(tx)
		customer, err := customers.lockByID(ctx, customerID)
		if err != nil {
			return fmt.Errorf("lock customer: %w", err)
		}
		return fn(port.Repos{
			Customers: customers,
			Loans:     NewLoanRepo(tx),
		}, customer)
	})
}

// SyncIDSequences realigns the identity sequences with the highest ingested
// IDs. Bulk ingestion inserts explicit IDs, which does not advance the
// sequences on its own; without this a later INSERT could collide.
func SyncIDSequences(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`SELECT setval(pg_get_serial_sequence('customers', 'customer_id'), GREATEST((SELECT COALESCE(MAX(customer_id), 0) FROM customers), 1))`,
		`SELECT setval(pg_get_serial_sequence('loans', 'loan_id'), GREATEST((SELECT COALESCE(MAX(loan_id), 0) FROM loans), 1))`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("sync id sequence: %w", err)
		}
	}
	return nil
}
