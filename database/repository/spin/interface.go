package spinRepo

import (
	"context"
	"time"

	"librarium/database"
	"librarium/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SpinDataRepository holds one "current" spin document per user.
type SpinDataRepository interface {
	Get(ctx context.Context, userID string) (*models.UserSpinData, error)
	Save(ctx context.Context, data *models.UserSpinData) error
}

// SpinLogRepository is append-only; nothing reads it for gating.
type SpinLogRepository interface {
	Append(ctx context.Context, entry *models.SpinLogEntry) error
}

type mongoSpinDataRepo struct {
	coll *mongo.Collection
}

type mongoSpinLogRepo struct {
	coll *mongo.Collection
}

const opTimeout = 5 * time.Second

func NewMongoSpinDataRepo() SpinDataRepository {
	repo := &mongoSpinDataRepo{coll: database.DB().Collection("spinData")}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("spinData", err)
	}
	return repo
}

func NewMongoSpinLogRepo() SpinLogRepository {
	return &mongoSpinLogRepo{coll: database.DB().Collection("spinLogs")}
}
