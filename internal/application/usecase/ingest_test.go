package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/infrastructure/persistence/memory"
)

func ingestCustomer(id int64) model.Customer {
	return model.Customer{
		ID:            id,
		FirstName:     "Asha",
		LastName:      "Rao",
		PhoneNumber:   9_000_000_000 + id,
		Age:           34,
		MonthlySalary: decimal.NewFromInt(50_000),
		ApprovedLimit: decimal.NewFromInt(1_800_000),
		CurrentDebt:   decimal.Zero,
	}
}

func ingestLoan(id, customerID int64) model.Loan {
	start := time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC)
	return model.Loan{
		ID:                 id,
		CustomerID:         customerID,
		Amount:             decimal.NewFromInt(100_000),
		TenureMonths:       24,
		InterestRate:       decimal.NewFromInt(10),
		MonthlyInstallment: decimal.NewFromFloat(4614.93),
		EMIsPaidOnTime:     12,
		StartDate:          start,
		EndDate:            start.AddDate(2, 0, 0),
	}
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("re-running an ingest does not duplicate", func(t *testing.T) {
		store := memory.NewStore()
		uc := NewIngestUseCase(store, store.Loans(), discardLogger())

		customers := []model.Customer{ingestCustomer(1), ingestCustomer(2)}
		n, err := uc.UpsertCustomers(ctx, customers)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		loans := []model.Loan{ingestLoan(1, 1), ingestLoan(2, 2)}
		n, err = uc.UpsertLoans(ctx, loans)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = uc.UpsertLoans(ctx, loans)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		got, err := store.Loans().FindByCustomerID(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("record without an id aborts the run", func(t *testing.T) {
		store := memory.NewStore()
		uc := NewIngestUseCase(store, store.Loans(), discardLogger())

		customers := []model.Customer{ingestCustomer(1), ingestCustomer(0)}
		n, err := uc.UpsertCustomers(ctx, customers)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, 1, n)
	})

	t.Run("loan referencing a missing customer aborts the run", func(t *testing.T) {
		store := memory.NewStore()
		uc := NewIngestUseCase(store, store.Loans(), discardLogger())

		_, err := uc.UpsertCustomers(ctx, []model.Customer{ingestCustomer(1)})
		require.NoError(t, err)

		n, err := uc.UpsertLoans(ctx, []model.Loan{ingestLoan(1, 1), ingestLoan(2, 9)})
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Equal(t, 1, n)
	})
}
