package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/creditdesk/credit-engine/internal/domain/model"
)

// LoanRepo implements port.LoanRepository over PostgreSQL.
type LoanRepo struct {
	db Querier
}

// NewLoanRepo creates a PostgreSQL-backed loan repository.
func NewLoanRepo(db Querier) *LoanRepo {
	return &LoanRepo{db: db}
}

const loanColumns = `loan_id, customer_id, loan_amount, tenure, interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date`

// Create inserts a loan and returns the assigned ID.
func (r *LoanRepo) Create(ctx context.Context, l model.Loan) (int64, error) {
	query := `
		INSERT INTO loans (customer_id, loan_amount, tenure, interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING loan_id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		l.CustomerID, l.Amount, l.TenureMonths, l.InterestRate,
		l.MonthlyInstallment, l.EMIsPaidOnTime, l.StartDate, l.EndDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert loan: %w", err)
	}
	return id, nil
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1`
	return scanLoan(r.db.QueryRow(ctx, query, id))
}

// FindByCustomerID retrieves all loans a customer holds, oldest first.
func (r *LoanRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY loan_id`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// Upsert writes a loan under its caller-supplied ID.
func (r *LoanRepo) Upsert(ctx context.Context, l model.Loan) error {
	query := `
		INSERT INTO loans (loan_id, customer_id, loan_amount, tenure, interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (loan_id) DO UPDATE SET
			customer_id         = EXCLUDED.customer_id,
			loan_amount         = EXCLUDED.loan_amount,
			tenure              = EXCLUDED.tenure,
			interest_rate       = EXCLUDED.interest_rate,
			monthly_installment = EXCLUDED.monthly_installment,
			emis_paid_on_time   = EXCLUDED.emis_paid_on_time,
			start_date          = EXCLUDED.start_date,
			end_date            = EXCLUDED.end_date
	`
	_, err := r.db.Exec(ctx, query,
		l.ID, l.CustomerID, l.Amount, l.TenureMonths, l.InterestRate,
		l.MonthlyInstallment, l.EMIsPaidOnTime, l.StartDate, l.EndDate,
	)
	if err != nil {
		return fmt.Errorf("upsert loan: %w", err)
	}
	return nil
}

func scanLoan(row pgx.Row) (model.Loan, error) {
	var l model.Loan
	err := row.Scan(
		&l.ID, &l.CustomerID, &l.Amount, &l.TenureMonths, &l.InterestRate,
		&l.MonthlyInstallment, &l.EMIsPaidOnTime, &l.StartDate, &l.EndDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, model.ErrNotFound
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}
	return l, nil
}
