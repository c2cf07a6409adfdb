package couponRepo

import (
	"context"
	"time"

	"librarium/database"
	"librarium/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CouponRepository stores coupons scoped to their owning user.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	Get(ctx context.Context, userID, couponID string) (*models.Coupon, error)
	// ListByUser returns the user's coupons, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Coupon, error)
	// ListAll returns coupons of every user, newest first.
	ListAll(ctx context.Context) ([]models.Coupon, error)
	// ListAvailable returns unused, unexpired coupons valid for category (wildcards included).
	ListAvailable(ctx context.Context, userID, category string, now time.Time) ([]models.Coupon, error)
	// MarkUsed flips isUsed only for an unused, unexpired coupon; otherwise database.ErrConflict.
	MarkUsed(ctx context.Context, userID, couponID, usageKey string, now time.Time) error
}

type mongoCouponRepo struct {
	coll *mongo.Collection
}

const opTimeout = 5 * time.Second

// NewMongoCouponRepo returns a CouponRepository instance using MongoDB.
func NewMongoCouponRepo() CouponRepository {
	repo := &mongoCouponRepo{coll: database.DB().Collection("coupons")}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("coupons", err)
	}
	return repo
}
