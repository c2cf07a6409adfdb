package ledgerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"librarium/database"
	"librarium/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTransactionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "referenceKey", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Record upserts on referenceKey with $setOnInsert so task retries stay idempotent.
func (r *mongoTransactionRepo) Record(ctx context.Context, tx *models.LedgerTransaction) (bool, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"referenceKey": tx.ReferenceKey},
		bson.M{"$setOnInsert": tx},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to record ledger transaction %s: %w", tx.ReferenceKey, err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *mongoTransactionRepo) GetByReference(ctx context.Context, referenceKey string) (*models.LedgerTransaction, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	var tx models.LedgerTransaction
	err := r.coll.FindOne(ctx, bson.M{"referenceKey": referenceKey}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching ledger transaction %s: %w", referenceKey, err)
	}
	return &tx, nil
}
