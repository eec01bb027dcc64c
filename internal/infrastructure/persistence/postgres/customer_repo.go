package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-engine/internal/domain/model"
)

// CustomerRepo implements port.CustomerRepository over PostgreSQL. It can be
// bound to a pool or to a transaction via the Querier.
type CustomerRepo struct {
	db Querier
}

// NewCustomerRepo creates a PostgreSQL-backed customer repository.
func NewCustomerRepo(db Querier) *CustomerRepo {
	return &CustomerRepo{db: db}
}

const customerColumns = `customer_id, first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt`

// Create inserts a customer and returns the assigned ID.
func (r *CustomerRepo) Create(ctx context.Context, c model.Customer) (int64, error) {
	query := `
		INSERT INTO customers (first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING customer_id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		c.FirstName, c.LastName, c.PhoneNumber, c.Age, c.MonthlySalary, c.ApprovedLimit, c.CurrentDebt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

// FindByID retrieves a customer by ID.
func (r *CustomerRepo) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
	return scanCustomer(r.db.QueryRow(ctx, query, id))
}

// Upsert writes a customer under its caller-supplied ID.
func (r *CustomerRepo) Upsert(ctx context.Context, c model.Customer) error {
	query := `
		INSERT INTO customers (customer_id, first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (customer_id) DO UPDATE SET
			first_name     = EXCLUDED.first_name,
			last_name      = EXCLUDED.last_name,
			phone_number   = EXCLUDED.phone_number,
			age            = EXCLUDED.age,
			monthly_salary = EXCLUDED.monthly_salary,
			approved_limit = EXCLUDED.approved_limit,
			current_debt   = EXCLUDED.current_debt
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.PhoneNumber, c.Age, c.MonthlySalary, c.ApprovedLimit, c.CurrentDebt,
	)
	if err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}
	return nil
}

// AddDebt increments the customer's current debt.
func (r *CustomerRepo) AddDebt(ctx context.Context, id int64, amount decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE customers SET current_debt = current_debt + $2 WHERE customer_id = $1`,
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// lockByID loads a customer row under FOR UPDATE. Must run inside a
// transaction; callers hold the lock until commit or rollback.
func (r *CustomerRepo) lockByID(ctx context.Context, id int64) (model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 FOR UPDATE`
	return scanCustomer(r.db.QueryRow(ctx, query, id))
}

func scanCustomer(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.PhoneNumber, &c.Age,
		&c.MonthlySalary, &c.ApprovedLimit, &c.CurrentDebt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, model.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}
