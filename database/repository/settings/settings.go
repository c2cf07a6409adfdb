package settingsRepo

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

// SettingsRepository stores the single global settings document.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Save(ctx context.Context, settings *models.AppSettings) error
}

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

func NewMongoSettingsRepo() SettingsRepository {
	return &mongoSettingsRepo{coll: database.DB().Collection("settings")}
}

func (r *mongoSettingsRepo) Get(ctx context.Context) (*models.AppSettings, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var s models.AppSettings
	err := r.coll.FindOne(ctx, bson.M{"id": models.AppSettingsID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching settings: %w", err)
	}
	return &s, nil
}

func (r *mongoSettingsRepo) Save(ctx context.Context, s *models.AppSettings) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	s.ID = models.AppSettingsID
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": models.AppSettingsID}, s, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
