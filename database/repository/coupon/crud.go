package couponRepo

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

func (r *mongoCouponRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isUsed", Value: 1}, {Key: "expiryDate", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new coupon.
func (r *mongoCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, coupon); err != nil {
		return fmt.Errorf("failed to insert coupon for %s: %w", coupon.UserID, err)
	}
	return nil
}

// Get returns one coupon of userID.
func (r *mongoCouponRepo) Get(ctx context.Context, userID, couponID string) (*models.Coupon, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	var coupon models.Coupon
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "id": couponID}).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching coupon %s: %w", couponID, err)
	}
	return &coupon, nil
}

func (r *mongoCouponRepo) ListByUser(ctx context.Context, userID string) ([]models.Coupon, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *mongoCouponRepo) ListAll(ctx context.Context) ([]models.Coupon, error) {
	return r.find(ctx, bson.M{})
}

// ListAvailable relies on {category: null} matching both null and missing fields.
func (r *mongoCouponRepo) ListAvailable(ctx context.Context, userID, category string, now time.Time) ([]models.Coupon, error) {
	filter := bson.M{
		"userId":     userID,
		"isUsed":     false,
		"expiryDate": bson.M{"$gt": now},
		"$or": bson.A{
			bson.M{"category": nil},
			bson.M{"category": category},
		},
	}
	return r.find(ctx, filter)
}

func (r *mongoCouponRepo) find(ctx context.Context, filter bson.M) ([]models.Coupon, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching coupons: %w", err)
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("error decoding coupons: %w", err)
	}
	return coupons, nil
}

// MarkUsed is a single conditional update so a coupon is consumed at most once.
func (r *mongoCouponRepo) MarkUsed(ctx context.Context, userID, couponID, usageKey string, now time.Time) error {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"userId":     userID,
		"id":         couponID,
		"isUsed":     false,
		"expiryDate": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"isUsed":           true,
			"usedAt":           now,
			"usedForPenaltyId": usageKey,
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark coupon %s used: %w", couponID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrConflict
	}
	return nil
}
