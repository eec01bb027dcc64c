package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditdesk/credit-engine/internal/application/dto"
	"github.com/creditdesk/credit-engine/internal/domain/event"
	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/infrastructure/persistence/memory"
)

func TestRegisterCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the approved limit and persists", func(t *testing.T) {
		store := memory.NewStore()
		publisher := &recordingPublisher{}
		uc := NewRegisterCustomerUseCase(store, publisher, discardLogger())

		resp, err := uc.Execute(ctx, dto.RegisterCustomerRequest{
			FirstName:     "Asha",
			LastName:      "Rao",
			Age:           34,
			MonthlyIncome: decimal.NewFromInt(50_000),
			PhoneNumber:   9_876_543_210,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.CustomerID)
		assert.Equal(t, "Asha Rao", resp.Name)
		assert.True(t, resp.ApprovedLimit.Equal(decimal.NewFromInt(1_800_000)))

		stored, err := store.FindByID(ctx, resp.CustomerID)
		require.NoError(t, err)
		assert.True(t, stored.CurrentDebt.IsZero())

		require.Len(t, publisher.events, 1)
		registered, ok := publisher.events[0].(event.CustomerRegistered)
		require.True(t, ok)
		assert.Equal(t, resp.CustomerID, registered.CustomerID)
	})

	t.Run("invalid input is rejected before any write", func(t *testing.T) {
		store := memory.NewStore()
		publisher := &recordingPublisher{}
		uc := NewRegisterCustomerUseCase(store, publisher, discardLogger())

		_, err := uc.Execute(ctx, dto.RegisterCustomerRequest{
			FirstName:     "Asha",
			LastName:      "Rao",
			Age:           -1,
			MonthlyIncome: decimal.NewFromInt(50_000),
			PhoneNumber:   9_876_543_210,
		})
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Empty(t, publisher.events)
	})
}
