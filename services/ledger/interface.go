package ledger

import (
	"context"

	"librarium/models"
)

// Recorder reports income to the accounting side. Callers treat it as
// fire-and-forget: a failure never undoes the operation that produced the income.
type Recorder interface {
	RecordIncome(ctx context.Context, tx models.LedgerTransaction) error
}
