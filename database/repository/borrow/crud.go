package borrowRepo

import (
	"context"
	"errors"
	"fmt"

	"librarium/database"
	"librarium/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID returns a borrow record by its ID.
func (r *mongoBorrowRepo) GetByID(ctx context.Context, id string) (*models.BorrowRecord, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	var record models.BorrowRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching borrow record %s: %w", id, err)
	}
	return &record, nil
}

// ListByUser returns every record borrowed by userID.
func (r *mongoBorrowRepo) ListByUser(ctx context.Context, userID string) ([]models.BorrowRecord, error) {
	return r.find(ctx, bson.M{"borrowedBy": userID})
}

// ListByFineStatus returns records filtered by fine status.
func (r *mongoBorrowRepo) ListByFineStatus(ctx context.Context, status models.FineStatus) ([]models.BorrowRecord, error) {
	filter := bson.M{}
	if status != "" {
		filter["fineStatus"] = status
	}
	return r.find(ctx, filter)
}

func (r *mongoBorrowRepo) find(ctx context.Context, filter bson.M) ([]models.BorrowRecord, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching borrow records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.BorrowRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error decoding borrow records: %w", err)
	}
	return records, nil
}

// Save upserts a record by ID.
func (r *mongoBorrowRepo) Save(ctx context.Context, record *models.BorrowRecord) error {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": record.ID}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save borrow record %s: %w", record.ID, err)
	}
	return nil
}

// MarkFinePaid moves the fine from pending to paid and stores the snapshot.
func (r *mongoBorrowRepo) MarkFinePaid(ctx context.Context, id string, snapshot models.FineSnapshot) error {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"id":         id,
		"fineStatus": bson.M{"$ne": models.FinePaid},
	}
	update := bson.M{
		"$set": bson.M{
			"fineStatus": models.FinePaid,
			"fine":       snapshot,
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark fine paid for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrConflict
	}
	return nil
}

// RaiseExtensionAllowance uses $max so an existing higher allowance is kept.
func (r *mongoBorrowRepo) RaiseExtensionAllowance(ctx context.Context, userID string, n int) (int64, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"borrowedBy":   userID,
		"returnStatus": models.ReturnBorrowed,
	}
	update := bson.M{"$max": bson.M{"maxExtensions": n}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to raise extension allowance for %s: %w", userID, err)
	}
	return res.ModifiedCount, nil
}
