// Package memory provides a map-backed store implementing the same
// repository and unit-of-work contracts as the PostgreSQL adapter. It backs
// tests and local runs without a database.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/domain/port"
)

type data struct {
	customers      map[int64]model.Customer
	loans          map[int64]model.Loan
	nextCustomerID int64
	nextLoanID     int64
}

func (d *data) clone() *data {
	return &data{
		customers:      maps.Clone(d.customers),
		loans:          maps.Clone(d.loans),
		nextCustomerID: d.nextCustomerID,
		nextLoanID:     d.nextLoanID,
	}
}

func (d *data) createCustomer(c model.Customer) int64 {
	d.nextCustomerID++
	c.ID = d.nextCustomerID
	d.customers[c.ID] = c
	return c.ID
}

func (d *data) upsertCustomer(c model.Customer) {
	d.customers[c.ID] = c
	if c.ID > d.nextCustomerID {
		d.nextCustomerID = c.ID
	}
}

func (d *data) createLoan(l model.Loan) int64 {
	d.nextLoanID++
	l.ID = d.nextLoanID
	d.loans[l.ID] = l
	return l.ID
}

func (d *data) upsertLoan(l model.Loan) {
	d.loans[l.ID] = l
	if l.ID > d.nextLoanID {
		d.nextLoanID = l.ID
	}
}

func (d *data) loansByCustomer(customerID int64) []model.Loan {
	var out []model.Loan
	for id := int64(1); id <= d.nextLoanID; id++ {
		if l, ok := d.loans[id]; ok && l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out
}

// Store is an in-memory implementation of port.CustomerRepository,
// port.LoanRepository and port.UnitOfWork. A single mutex guards all state;
// the transactional callback works on a copy that replaces the live data
// only when the callback succeeds.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{d: &data{
		customers: make(map[int64]model.Customer),
		loans:     make(map[int64]model.Loan),
	}}
}

// --- port.CustomerRepository ---

func (s *Store) Create(_ context.Context, c model.Customer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.createCustomer(c), nil
}

func (s *Store) FindByID(_ context.Context, id int64) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.d.customers[id]
	if !ok {
		return model.Customer{}, model.ErrNotFound
	}
	return c, nil
}

func (s *Store) Upsert(_ context.Context, c model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.upsertCustomer(c)
	return nil
}

func (s *Store) AddDebt(_ context.Context, id int64, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.d.customers[id]
	if !ok {
		return model.ErrNotFound
	}
	c.CurrentDebt = c.CurrentDebt.Add(amount)
	s.d.customers[id] = c
	return nil
}

// Loans returns a repository view over the same data for wiring call sites
// that want the two repositories as distinct values.
func (s *Store) Loans() port.LoanRepository { return (*loanView)(s) }

// loanView exposes the loan half of the store under its own type so Store
// can satisfy both repository interfaces despite the overlapping method
// names.
type loanView Store

func (v *loanView) Create(_ context.Context, l model.Loan) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.d.createLoan(l), nil
}

func (v *loanView) FindByID(_ context.Context, id int64) (model.Loan, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	l, ok := v.d.loans[id]
	if !ok {
		return model.Loan{}, model.ErrNotFound
	}
	return l, nil
}

func (v *loanView) FindByCustomerID(_ context.Context, customerID int64) ([]model.Loan, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.d.loansByCustomer(customerID), nil
}

func (v *loanView) Upsert(_ context.Context, l model.Loan) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.d.upsertLoan(l)
	return nil
}

// --- port.UnitOfWork ---

// WithinCustomerTx serializes on the store mutex, hands fn a copy of the
// data, and swaps the copy in only when fn succeeds. An error from fn
// discards every write made inside it.
func (s *Store) WithinCustomerTx(_ context.Context, customerID int64, fn func(r port.Repos, c model.Customer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.d.customers[customerID]
	if !ok {
		return fmt.Errorf("lock customer: %w", model.ErrNotFound)
	}

	staged := &txData{d: s.d.clone()}
	if err := fn(port.Repos{Customers: staged, Loans: (*txLoans)(staged)}, customer); err != nil {
		return err
	}
	s.d = staged.d
	return nil
}

// txData implements the repositories against the staged copy without
// locking; the caller already holds the store mutex.
type txData struct {
	d *data
}

func (t *txData) Create(_ context.Context, c model.Customer) (int64, error) {
	return t.d.createCustomer(c), nil
}

func (t *txData) FindByID(_ context.Context, id int64) (model.Customer, error) {
	c, ok := t.d.customers[id]
	if !ok {
		return model.Customer{}, model.ErrNotFound
	}
	return c, nil
}

func (t *txData) Upsert(_ context.Context, c model.Customer) error {
	t.d.upsertCustomer(c)
	return nil
}

func (t *txData) AddDebt(_ context.Context, id int64, amount decimal.Decimal) error {
	c, ok := t.d.customers[id]
	if !ok {
		return model.ErrNotFound
	}
	c.CurrentDebt = c.CurrentDebt.Add(amount)
	t.d.customers[id] = c
	return nil
}

type txLoans txData

func (t *txLoans) Create(_ context.Context, l model.Loan) (int64, error) {
	return t.d.createLoan(l), nil
}

func (t *txLoans) FindByID(_ context.Context, id int64) (model.Loan, error) {
	l, ok := t.d.loans[id]
	if !ok {
		return model.Loan{}, model.ErrNotFound
	}
	return l, nil
}

func (t *txLoans) FindByCustomerID(_ context.Context, customerID int64) ([]model.Loan, error) {
	return t.d.loansByCustomer(customerID), nil
}

func (t *txLoans) Upsert(_ context.Context, l model.Loan) error {
	t.d.upsertLoan(l)
	return nil
}
