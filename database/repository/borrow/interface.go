package borrowRepo

import (
	"context"
	"time"

	"librarium/database"
	"librarium/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BorrowRepository is the narrow view of circulation records the fine and spin engines need.
type BorrowRepository interface {
	GetByID(ctx context.Context, id string) (*models.BorrowRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.BorrowRecord, error)
	// ListByFineStatus returns every record, or only those with status when it is non-empty.
	ListByFineStatus(ctx context.Context, status models.FineStatus) ([]models.BorrowRecord, error)
	Save(ctx context.Context, record *models.BorrowRecord) error
	// MarkFinePaid writes the snapshot only if the fine is still pending; otherwise database.ErrConflict.
	MarkFinePaid(ctx context.Context, id string, snapshot models.FineSnapshot) error
	// RaiseExtensionAllowance lifts maxExtensions to at least n on the user's active records.
	RaiseExtensionAllowance(ctx context.Context, userID string, n int) (int64, error)
}

type mongoBorrowRepo struct {
	coll *mongo.Collection
}

const opTimeout = 5 * time.Second

// NewMongoBorrowRepo returns a BorrowRepository backed by the borrowedBooks collection.
func NewMongoBorrowRepo() BorrowRepository {
	repo := &mongoBorrowRepo{coll: database.DB().Collection("borrowedBooks")}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("borrowedBooks", err)
	}
	return repo
}
