package models

import "time"

// UserSpinData is the per-user "current" spin bookkeeping document.
type UserSpinData struct {
	UserID               string     `bson:"userId" json:"userId"`
	LastSpinDate         *time.Time `bson:"lastSpinDate" json:"lastSpinDate"`
	SpinCount            int        `bson:"spinCount" json:"spinCount"`
	ExtraSpins           int        `bson:"extraSpins" json:"extraSpins"`
	BorrowExtensionCount int        `bson:"borrowExtensionCount" json:"borrowExtensionCount"`
	// SpinsToday counts ordinary spins on SpinDay (YYYY-MM-DD in the spin timezone).
	SpinsToday int    `bson:"spinsToday" json:"spinsToday"`
	SpinDay    string `bson:"spinDay" json:"spinDay"`
}

// NewUserSpinData is the initial document for a user who never spun.
func NewUserSpinData(userID string) *UserSpinData {
	return &UserSpinData{UserID: userID, BorrowExtensionCount: 1}
}

// SpinLogEntry is an append-only audit record of one draw.
type SpinLogEntry struct {
	ID          string     `bson:"id" json:"id"`
	UserID      string     `bson:"userId" json:"userId"`
	WheelID     string     `bson:"wheelId" json:"wheelId"`
	RewardID    string     `bson:"rewardId" json:"rewardId"`
	RewardName  string     `bson:"rewardName" json:"rewardName"`
	RewardType  RewardType `bson:"rewardType" json:"rewardType"`
	RewardValue *int       `bson:"rewardValue" json:"rewardValue"`
	Category    *string    `bson:"category" json:"category"`
	UsedExtra   bool       `bson:"usedExtraSpin" json:"usedExtraSpin"`
	Timestamp   time.Time  `bson:"timestamp" json:"timestamp"`
}

// SpinResult is what a user receives from one spin.
type SpinResult struct {
	Reward   Reward        `json:"reward"`
	Category *string       `json:"category,omitempty"`
	Rotation float64       `json:"rotation"`
	Coupon   *Coupon       `json:"coupon,omitempty"`
	SpinData *UserSpinData `json:"spinData"`
}

// SpinStatus summarizes whether and when a user can spin.
type SpinStatus struct {
	SpinData          *UserSpinData `json:"spinData"`
	CanSpin           bool          `json:"canSpin"`
	HasSpunToday      bool          `json:"hasSpunToday"`
	TimeUntilNextSpin string        `json:"timeUntilNextSpin"`
	WheelID           string        `json:"wheelId"`
}
