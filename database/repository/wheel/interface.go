package wheelRepo

import (
	"context"
	"time"

	"librarium/database"
	"librarium/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// WheelRepository stores named wheel configurations. Writes replace the
// whole document (last write wins).
type WheelRepository interface {
	Get(ctx context.Context, id string) (*models.WheelSettings, error)
	List(ctx context.Context) ([]models.WheelSettings, error)
	Save(ctx context.Context, wheel *models.WheelSettings) error
}

type mongoWheelRepo struct {
	coll *mongo.Collection
}

const opTimeout = 5 * time.Second

// NewMongoWheelRepo returns a WheelRepository backed by the wheelSettings collection.
func NewMongoWheelRepo() WheelRepository {
	repo := &mongoWheelRepo{coll: database.DB().Collection("wheelSettings")}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("wheelSettings", err)
	}
	return repo
}
