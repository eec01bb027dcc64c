package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditdesk/credit-engine/internal/application/dto"
	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/infrastructure/persistence/memory"
)

// fakeCache is an in-process LoanDetailCache for testing the read path.
type fakeCache struct {
	entries map[int64]dto.LoanDetailResponse
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]dto.LoanDetailResponse)}
}

func (c *fakeCache) Get(_ context.Context, loanID int64) (dto.LoanDetailResponse, bool) {
	d, ok := c.entries[loanID]
	return d, ok
}

func (c *fakeCache) Set(_ context.Context, loanID int64, detail dto.LoanDetailResponse) {
	c.entries[loanID] = detail
	c.sets++
}

func seedLoan(t *testing.T, store *memory.Store, customerID int64, amount int64) int64 {
	t.Helper()
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	loan, err := model.NewLoan(customerID, decimal.NewFromInt(amount), decimal.NewFromInt(10), 24, decimal.NewFromFloat(4614.93), now)
	require.NoError(t, err)
	loan.EMIsPaidOnTime = 6
	id, err := store.Loans().Create(context.Background(), loan)
	require.NoError(t, err)
	return id
}

func TestGetLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles the loan with its customer", func(t *testing.T) {
		store := memory.NewStore()
		uc := NewGetLoanUseCase(store.Loans(), store, nil)

		customerID := seedCustomer(t, store, 50_000)
		loanID := seedLoan(t, store, customerID, 100_000)

		detail, err := uc.Execute(ctx, loanID)
		require.NoError(t, err)

		assert.Equal(t, loanID, detail.LoanID)
		assert.Equal(t, customerID, detail.Customer.ID)
		assert.Equal(t, "Asha", detail.Customer.FirstName)
		assert.Equal(t, 24, detail.TenureMonths)
		assert.True(t, detail.LoanAmount.Equal(decimal.NewFromInt(100_000)))
	})

	t.Run("fills the cache on a miss and serves from it after", func(t *testing.T) {
		store := memory.NewStore()
		cache := newFakeCache()
		uc := NewGetLoanUseCase(store.Loans(), store, cache)

		customerID := seedCustomer(t, store, 50_000)
		loanID := seedLoan(t, store, customerID, 100_000)

		first, err := uc.Execute(ctx, loanID)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets)

		second, err := uc.Execute(ctx, loanID)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets, "a cache hit must not rewrite the entry")
		assert.Equal(t, first, second)
	})

	t.Run("unknown loan", func(t *testing.T) {
		store := memory.NewStore()
		uc := NewGetLoanUseCase(store.Loans(), store, nil)

		_, err := uc.Execute(ctx, 404)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestListCustomerLoans(t *testing.T) {
	ctx := context.Background()

	t.Run("reports repayments left", func(t *testing.T) {
		store := memory.NewStore()
		uc := NewListCustomerLoansUseCase(store, store.Loans())

		customerID := seedCustomer(t, store, 50_000)
		loanID := seedLoan(t, store, customerID, 100_000)

		out, err := uc.Execute(ctx, customerID)
		require.NoError(t, err)

		require.Len(t, out, 1)
		assert.Equal(t, loanID, out[0].LoanID)
		assert.Equal(t, 18, out[0].RepaymentsLeft)
	})

	t.Run("known customer with no loans gets an empty list", func(t *testing.T) {
		store := memory.NewStore()
		uc := NewListCustomerLoansUseCase(store, store.Loans())

		customerID := seedCustomer(t, store, 50_000)
		out, err := uc.Execute(ctx, customerID)
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.NotNil(t, out)
	})

	t.Run("unknown customer", func(t *testing.T) {
		store := memory.NewStore()
		uc := NewListCustomerLoansUseCase(store, store.Loans())

		_, err := uc.Execute(ctx, 42)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
