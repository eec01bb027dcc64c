package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/creditdesk/credit-engine/internal/domain/event"
	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/infrastructure/persistence/memory"
)

// recordingPublisher collects every published event for inspection.
type recordingPublisher struct {
	events []event.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedCustomer inserts a customer directly into the store and returns its ID.
func seedCustomer(t *testing.T, store *memory.Store, salary int64) int64 {
	t.Helper()
	c, err := model.NewCustomer("Asha", "Rao", 9_876_543_210, 34, decimal.NewFromInt(salary))
	require.NoError(t, err)
	id, err := store.Create(context.Background(), c)
	require.NoError(t, err)
	return id
}
