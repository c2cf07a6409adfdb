package wheelRepo

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

func (r *mongoWheelRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoWheelRepo) Get(ctx context.Context, id string) (*models.WheelSettings, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	var wheel models.WheelSettings
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&wheel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching wheel %s: %w", id, err)
	}
	return &wheel, nil
}

func (r *mongoWheelRepo) List(ctx context.Context) ([]models.WheelSettings, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching wheels: %w", err)
	}
	defer cursor.Close(ctx)

	wheels := []models.WheelSettings{}
	if err := cursor.All(ctx, &wheels); err != nil {
		return nil, fmt.Errorf("error decoding wheels: %w", err)
	}
	return wheels, nil
}

func (r *mongoWheelRepo) Save(ctx context.Context, wheel *models.WheelSettings) error {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": wheel.ID}, wheel, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save wheel %s: %w", wheel.ID, err)
	}
	return nil
}
