package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/domain/port"
)

func storeCustomer() model.Customer {
	return model.Customer{
		FirstName:     "Asha",
		LastName:      "Rao",
		PhoneNumber:   9_876_543_210,
		Age:           34,
		MonthlySalary: decimal.NewFromInt(50_000),
		ApprovedLimit: decimal.NewFromInt(1_800_000),
		CurrentDebt:   decimal.Zero,
	}
}

func storeLoan(customerID int64) model.Loan {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	return model.Loan{
		CustomerID:         customerID,
		Amount:             decimal.NewFromInt(100_000),
		TenureMonths:       24,
		InterestRate:       decimal.NewFromInt(10),
		MonthlyInstallment: decimal.NewFromFloat(4614.93),
		StartDate:          start,
		EndDate:            start.AddDate(2, 0, 0),
	}
}

func TestStoreRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns sequential ids", func(t *testing.T) {
		s := NewStore()
		first, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)
		second, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)
		assert.Equal(t, int64(1), first)
		assert.Equal(t, int64(2), second)
	})

	t.Run("upsert advances the id sequence", func(t *testing.T) {
		s := NewStore()
		c := storeCustomer()
		c.ID = 10
		require.NoError(t, s.Upsert(ctx, c))

		next, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)
		assert.Equal(t, int64(11), next)
	})

	t.Run("add debt", func(t *testing.T) {
		s := NewStore()
		id, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)

		require.NoError(t, s.AddDebt(ctx, id, decimal.NewFromInt(100_000)))
		require.NoError(t, s.AddDebt(ctx, id, decimal.NewFromInt(50_000)))

		c, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, c.CurrentDebt.Equal(decimal.NewFromInt(150_000)))

		assert.ErrorIs(t, s.AddDebt(ctx, 99, decimal.NewFromInt(1)), model.ErrNotFound)
	})

	t.Run("loans filter by customer", func(t *testing.T) {
		s := NewStore()
		a, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)
		b, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)

		_, err = s.Loans().Create(ctx, storeLoan(a))
		require.NoError(t, err)
		_, err = s.Loans().Create(ctx, storeLoan(b))
		require.NoError(t, err)
		_, err = s.Loans().Create(ctx, storeLoan(a))
		require.NoError(t, err)

		got, err := s.Loans().FindByCustomerID(ctx, a)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("missing records", func(t *testing.T) {
		s := NewStore()
		_, err := s.FindByID(ctx, 1)
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = s.Loans().FindByID(ctx, 1)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestStoreUnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		s := NewStore()
		id, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)

		err = s.WithinCustomerTx(ctx, id, func(r port.Repos, c model.Customer) error {
			if _, err := r.Loans.Create(ctx, storeLoan(id)); err != nil {
				return err
			}
			return r.Customers.AddDebt(ctx, id, decimal.NewFromInt(100_000))
		})
		require.NoError(t, err)

		loans, err := s.Loans().FindByCustomerID(ctx, id)
		require.NoError(t, err)
		assert.Len(t, loans, 1)

		c, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, c.CurrentDebt.Equal(decimal.NewFromInt(100_000)))
	})

	t.Run("discards every write on error", func(t *testing.T) {
		s := NewStore()
		id, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)

		boom := errors.New("boom")
		err = s.WithinCustomerTx(ctx, id, func(r port.Repos, c model.Customer) error {
			if _, err := r.Loans.Create(ctx, storeLoan(id)); err != nil {
				return err
			}
			if err := r.Customers.AddDebt(ctx, id, decimal.NewFromInt(100_000)); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		loans, err := s.Loans().FindByCustomerID(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, loans)

		c, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, c.CurrentDebt.IsZero())
	})

	t.Run("hands fn the locked customer", func(t *testing.T) {
		s := NewStore()
		id, err := s.Create(ctx, storeCustomer())
		require.NoError(t, err)

		err = s.WithinCustomerTx(ctx, id, func(r port.Repos, c model.Customer) error {
			assert.Equal(t, id, c.ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("unknown customer fails before fn runs", func(t *testing.T) {
		s := NewStore()
		called := false
		err := s.WithinCustomerTx(ctx, 99, func(r port.Repos, c model.Customer) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.False(t, called)
	})
}
