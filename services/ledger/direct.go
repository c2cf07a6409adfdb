package ledger

import (
	"context"
	"time"

	ledgerRepo "librarium/database/repository/ledger"
	"librarium/models"
	"librarium/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DirectRecorder writes entries straight to the transactions collection.
// It is used by the queue worker and when the queue is disabled.
type DirectRecorder struct {
	Repo ledgerRepo.TransactionRepository
	Now  func() time.Time
}

func NewDirectRecorder(repo ledgerRepo.TransactionRepository) *DirectRecorder {
	return &DirectRecorder{Repo: repo}
}

func (r *DirectRecorder) RecordIncome(ctx context.Context, tx models.LedgerTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		if r.Now != nil {
			tx.CreatedAt = r.Now()
		} else {
			tx.CreatedAt = time.Now()
		}
	}
	if tx.Date.IsZero() {
		tx.Date = tx.CreatedAt
	}

	written, err := r.Repo.Record(ctx, &tx)
	if err != nil {
		return utils.StorageError("record ledger income", err)
	}
	if !written {
		utils.GetLogger().Info("ledger entry already recorded", zap.String("referenceKey", tx.ReferenceKey))
		return nil
	}
	utils.GetLogger().Info("ledger income recorded",
		zap.String("referenceKey", tx.ReferenceKey),
		zap.Float64("amount", tx.Amount),
	)
	return nil
}
