package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"librarium/database/repository/memory"
	"librarium/models"
	"librarium/services/ledger"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLedgerIncomeTask(t *testing.T) {
	store := memory.NewStore()
	handler := HandleLedgerIncomeTask(ledger.NewDirectRecorder(store.Transactions()))

	paid := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	task, _, err := ledger.NewIncomeTask(models.LedgerTransaction{
		Type:         models.TransactionIncome,
		Category:     ledger.FineIncomeCategory,
		Amount:       15,
		ReferenceKey: "fine:u1_b1",
		UserID:       "u1",
		Date:         paid,
	})
	require.NoError(t, err)

	// Redelivery of the same task must not double-count.
	require.NoError(t, handler(context.Background(), task))
	require.NoError(t, handler(context.Background(), task))

	entry, err := store.Transactions().GetByReference(context.Background(), "fine:u1_b1")
	require.NoError(t, err)
	assert.Equal(t, 15.0, entry.Amount)
}

func TestHandleLedgerIncomeTaskBadPayload(t *testing.T) {
	store := memory.NewStore()
	handler := HandleLedgerIncomeTask(ledger.NewDirectRecorder(store.Transactions()))

	err := handler(context.Background(), asynq.NewTask(ledger.TypeLedgerIncome, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
