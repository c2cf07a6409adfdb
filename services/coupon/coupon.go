package coupon

import (
	"context"
	"errors"
	"strings"

	"librarium/database"
	"librarium/models"
	"librarium/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const fallbackExpiryDays = 30

// CreateCoupon mints an unused coupon expiring ExpiryDays from now.
func (s *DefaultCouponService) CreateCoupon(ctx context.Context, in CreateCouponInput) (*models.Coupon, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, ErrMissingUser
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidCouponType
	}
	if !models.IsAllowedDiscount(in.DiscountPercent) {
		return nil, ErrInvalidDiscount
	}
	if in.ExpiryDays < 0 {
		return nil, ErrInvalidExpiry
	}

	expiryDays := in.ExpiryDays
	if expiryDays == 0 {
		expiryDays = s.DefaultExpiryDays
	}
	if expiryDays <= 0 {
		expiryDays = fallbackExpiryDays
	}

	now := s.now()
	coupon := &models.Coupon{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		Type:            in.Type,
		DiscountPercent: in.DiscountPercent,
		Category:        normalizeCategory(in.Category),
		CreatedAt:       now,
		ExpiryDate:      now.AddDate(0, 0, expiryDays),
		WonFromSpin:     in.WonFromSpin,
	}

	if err := s.Repo.Create(ctx, coupon); err != nil {
		return nil, utils.StorageError("create coupon", err)
	}

	utils.GetLogger().Info("coupon created",
		zap.String("userID", coupon.UserID),
		zap.String("couponID", coupon.ID),
		zap.Int("discountPercent", coupon.DiscountPercent),
		zap.Bool("wonFromSpin", coupon.WonFromSpin),
	)
	return coupon, nil
}

func (s *DefaultCouponService) Get(ctx context.Context, userID, couponID string) (*models.Coupon, error) {
	c, err := s.Repo.Get(ctx, userID, couponID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, utils.StorageError("get coupon", err)
	}
	return c, nil
}

// ListAvailable returns coupons that are unused, unexpired and valid for category.
func (s *DefaultCouponService) ListAvailable(ctx context.Context, userID, category string) ([]models.Coupon, error) {
	now := s.now()
	coupons, err := s.Repo.ListAvailable(ctx, userID, category, now)
	if err != nil {
		return nil, utils.StorageError("list available coupons", err)
	}
	// Guard against a backend that is looser than the contract.
	out := coupons[:0]
	for _, c := range coupons {
		if c.IsAvailable(now, category) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *DefaultCouponService) ListByUser(ctx context.Context, userID string) ([]models.CouponView, error) {
	coupons, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.StorageError("list coupons", err)
	}
	return s.views(coupons), nil
}

func (s *DefaultCouponService) ListAll(ctx context.Context) ([]models.CouponView, error) {
	coupons, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, utils.StorageError("list all coupons", err)
	}
	return s.views(coupons), nil
}

// Redeem consumes a coupon exactly once and records what consumed it.
func (s *DefaultCouponService) Redeem(ctx context.Context, couponID, userID, usageKey string) (*models.Coupon, error) {
	c, err := s.Get(ctx, userID, couponID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if c.IsUsed {
		return nil, ErrCouponUsed
	}
	if c.IsExpired(now) {
		return nil, ErrCouponExpired
	}

	if err := s.Repo.MarkUsed(ctx, userID, couponID, usageKey, now); err != nil {
		if errors.Is(err, database.ErrConflict) {
			// Lost a race with another redemption.
			return nil, ErrCouponUsed
		}
		return nil, utils.StorageError("redeem coupon", err)
	}

	usedAt := now
	c.IsUsed = true
	c.UsedAt = &usedAt
	c.UsedForPenaltyID = &usageKey

	utils.GetLogger().Info("coupon redeemed",
		zap.String("userID", userID),
		zap.String("couponID", couponID),
		zap.String("usageKey", usageKey),
	)
	return c, nil
}

func (s *DefaultCouponService) views(coupons []models.Coupon) []models.CouponView {
	now := s.now()
	views := make([]models.CouponView, 0, len(coupons))
	for _, c := range coupons {
		views = append(views, models.CouponView{Coupon: c, Status: c.Status(now)})
	}
	return views
}

// normalizeCategory keeps the wildcard a true nil, never an empty string.
func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

