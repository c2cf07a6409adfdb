package spinRepo

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

func (r *mongoSpinDataRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoSpinDataRepo) Get(ctx context.Context, userID string) (*models.UserSpinData, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	var data models.UserSpinData
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&data)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching spin data for %s: %w", userID, err)
	}
	return &data, nil
}

func (r *mongoSpinDataRepo) Save(ctx context.Context, data *models.UserSpinData) error {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"userId": data.UserID}, data, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save spin data for %s: %w", data.UserID, err)
	}
	return nil
}

func (r *mongoSpinLogRepo) Append(ctx context.Context, entry *models.SpinLogEntry) error {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append spin log for %s: %w", entry.UserID, err)
	}
	return nil
}
