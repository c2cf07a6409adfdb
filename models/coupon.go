package models

import "time"

type CouponType string

const (
	CouponPenaltyDiscount CouponType = "penalty-discount"
	CouponShopDiscount    CouponType = "shop-discount"
)

// Valid reports whether t is a known coupon type.
func (t CouponType) Valid() bool {
	switch t {
	case CouponPenaltyDiscount, CouponShopDiscount:
		return true
	}
	return false
}

type CouponStatus string

const (
	CouponActive  CouponStatus = "active"
	CouponUsed    CouponStatus = "used"
	CouponExpired CouponStatus = "expired"
)

// AllowedDiscountPercents are the only percentages a coupon may carry.
var AllowedDiscountPercents = []int{5, 10, 20, 50, 100}

// IsAllowedDiscount reports whether p is one of AllowedDiscountPercents.
func IsAllowedDiscount(p int) bool {
	for _, allowed := range AllowedDiscountPercents {
		if p == allowed {
			return true
		}
	}
	return false
}

// Coupon is a single-use discount owned by one user.
// A nil Category is a wildcard valid for every category.
type Coupon struct {
	ID               string     `bson:"id" json:"id"`
	UserID           string     `bson:"userId" json:"userId"`
	Type             CouponType `bson:"type" json:"type"`
	DiscountPercent  int        `bson:"discountPercent" json:"discountPercent"`
	Category         *string    `bson:"category" json:"category"`
	IsUsed           bool       `bson:"isUsed" json:"isUsed"`
	UsedAt           *time.Time `bson:"usedAt" json:"usedAt"`
	UsedForPenaltyID *string    `bson:"usedForPenaltyId" json:"usedForPenaltyId"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	ExpiryDate       time.Time  `bson:"expiryDate" json:"expiryDate"`
	WonFromSpin      bool       `bson:"wonFromSpin" json:"wonFromSpin"`
}

// IsExpired is independent of IsUsed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return !c.ExpiryDate.After(now)
}

// Matches reports whether the coupon applies to category.
func (c *Coupon) Matches(category string) bool {
	return c.Category == nil || *c.Category == category
}

// IsAvailable reports whether the coupon can still be redeemed for category.
func (c *Coupon) IsAvailable(now time.Time, category string) bool {
	return !c.IsUsed && !c.IsExpired(now) && c.Matches(category)
}

// Status derives the display status at now. Used wins over expired.
func (c *Coupon) Status(now time.Time) CouponStatus {
	switch {
	case c.IsUsed:
		return CouponUsed
	case c.IsExpired(now):
		return CouponExpired
	default:
		return CouponActive
	}
}

// CouponView is a coupon with its derived status.
type CouponView struct {
	Coupon
	Status CouponStatus `json:"status"`
}
