package models

import "time"

// RewardType is the closed set of wheel outcomes.
type RewardType string

const (
	RewardCategory        RewardType = "category"
	RewardPenaltyDiscount RewardType = "penalty-discount"
	RewardShopDiscount    RewardType = "shop-discount"
	RewardBorrowExtension RewardType = "borrow-extension"
	RewardSpinAgain       RewardType = "spin-again"
	RewardPass            RewardType = "pass"
)

// RewardTypes lists every RewardType in declaration order.
var RewardTypes = []RewardType{
	RewardCategory, RewardPenaltyDiscount, RewardShopDiscount, RewardBorrowExtension, RewardSpinAgain, RewardPass,
}

// Valid reports whether t is a known reward type.
func (t RewardType) Valid() bool {
	for _, known := range RewardTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsDiscount reports whether winning t mints a coupon.
func (t RewardType) IsDiscount() bool {
	return t == RewardPenaltyDiscount || t == RewardShopDiscount
}

// CouponType maps a discount reward to the coupon it mints.
func (t RewardType) CouponType() (CouponType, bool) {
	switch t {
	case RewardPenaltyDiscount:
		return CouponPenaltyDiscount, true
	case RewardShopDiscount:
		return CouponShopDiscount, true
	}
	return "", false
}

// Reward is one wheel segment. Probability is a relative weight.
type Reward struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Type        RewardType `bson:"type" json:"type"`
	Value       *int       `bson:"value,omitempty" json:"value,omitempty"`
	Probability float64    `bson:"probability" json:"probability"`
	IsActive    bool       `bson:"isActive" json:"isActive"`
	Icon        string     `bson:"icon" json:"icon"`
	Color       string     `bson:"color" json:"color"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

// WheelSettings is one named wheel configuration.
type WheelSettings struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name,omitempty" json:"name,omitempty"`
	Rewards        []Reward  `bson:"rewards" json:"rewards"`
	IsActive       bool      `bson:"isActive" json:"isActive"`
	DailySpinLimit int       `bson:"dailySpinLimit" json:"dailySpinLimit"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ActiveRewards returns the participating rewards in catalog order.
func (w *WheelSettings) ActiveRewards() []Reward {
	active := make([]Reward, 0, len(w.Rewards))
	for _, r := range w.Rewards {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}

// TotalProbability sums the weights of every reward on the wheel.
func (w *WheelSettings) TotalProbability() float64 {
	var sum float64
	for _, r := range w.Rewards {
		sum += r.Probability
	}
	return sum
}

// RewardIndex returns the position of id in rewards, or -1.
func RewardIndex(rewards []Reward, id string) int {
	for i, r := range rewards {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// IntPtr is a convenience for optional reward values.
func IntPtr(v int) *int { return &v }
