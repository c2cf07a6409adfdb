package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"librarium/models"
	"librarium/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeLedgerIncome = "ledger:income"

// NewIncomeTask wraps tx for the ledger worker. The reference key doubles as
// the task id so the same fine is never queued twice.
func NewIncomeTask(tx models.LedgerTransaction) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(tx)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeLedgerIncome, b)
	opts := []asynq.Option{asynq.MaxRetry(10)}
	if tx.ReferenceKey != "" {
		opts = append(opts, asynq.TaskID(tx.ReferenceKey))
	}
	return task, opts, nil
}

// ParseIncomeTask decodes the payload written by NewIncomeTask.
func ParseIncomeTask(task *asynq.Task) (models.LedgerTransaction, error) {
	var tx models.LedgerTransaction
	if err := json.Unmarshal(task.Payload(), &tx); err != nil {
		return tx, fmt.Errorf("invalid %s payload: %w", TypeLedgerIncome, err)
	}
	return tx, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqRecorder hands entries to the background ledger worker.
type AsynqRecorder struct {
	client Enqueuer
}

func NewAsynqRecorder(client Enqueuer) *AsynqRecorder {
	return &AsynqRecorder{client: client}
}

func (r *AsynqRecorder) RecordIncome(ctx context.Context, tx models.LedgerTransaction) error {
	task, opts, err := NewIncomeTask(tx)
	if err != nil {
		return err
	}
	info, err := r.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		utils.GetLogger().Info("ledger task already queued", zap.String("referenceKey", tx.ReferenceKey))
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue ledger income: %w", err)
	}
	utils.GetLogger().Debug("ledger task queued",
		zap.String("taskID", info.ID),
		zap.String("referenceKey", tx.ReferenceKey),
	)
	return nil
}
