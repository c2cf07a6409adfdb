package ledgerRepo

import (
	"context"
	"time"

	"librarium/database"
	"librarium/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionRepository persists ledger entries.
type TransactionRepository interface {
	// Record inserts tx unless an entry with the same reference key exists.
	// It reports whether a new entry was written.
	Record(ctx context.Context, tx *models.LedgerTransaction) (bool, error)
	GetByReference(ctx context.Context, referenceKey string) (*models.LedgerTransaction, error)
}

type mongoTransactionRepo struct {
	coll *mongo.Collection
}

const opTimeout = 5 * time.Second

func NewMongoTransactionRepo() TransactionRepository {
	repo := &mongoTransactionRepo{coll: database.DB().Collection("transactions")}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("transactions", err)
	}
	return repo
}
