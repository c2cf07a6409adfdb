package coupon

import (
	"context"
	"time"

	couponRepo "librarium/database/repository/coupon"
	"librarium/models"
)

// CouponService manages the lifecycle of user coupons.
type CouponService interface {
	CreateCoupon(ctx context.Context, in CreateCouponInput) (*models.Coupon, error)
	Get(ctx context.Context, userID, couponID string) (*models.Coupon, error)
	ListAvailable(ctx context.Context, userID, category string) ([]models.Coupon, error)
	ListByUser(ctx context.Context, userID string) ([]models.CouponView, error)
	ListAll(ctx context.Context) ([]models.CouponView, error)
	Redeem(ctx context.Context, couponID, userID, usageKey string) (*models.Coupon, error)
}

// CreateCouponInput describes a coupon to mint. A nil or empty Category
// makes the coupon valid for every category. ExpiryDays <= 0 uses the default.
type CreateCouponInput struct {
	UserID          string            `json:"userId"`
	Type            models.CouponType `json:"type"`
	DiscountPercent int               `json:"discountPercent"`
	Category        *string           `json:"category"`
	ExpiryDays      int               `json:"expiryDays"`
	WonFromSpin     bool              `json:"wonFromSpin"`
}

// DefaultCouponService is the production implementation.
type DefaultCouponService struct {
	Repo              couponRepo.CouponRepository
	DefaultExpiryDays int
	Now               func() time.Time
}

func NewDefaultCouponService(repo couponRepo.CouponRepository, defaultExpiryDays int) *DefaultCouponService {
	return &DefaultCouponService{Repo: repo, DefaultExpiryDays: defaultExpiryDays}
}

func (s *DefaultCouponService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
