package wheel

import (
	"time"

	"librarium/models"
)

// DefaultRewards is the catalog a freshly seeded wheel starts with.
// Weights sum to 100.
func DefaultRewards() []models.Reward {
	return []models.Reward{
		{ID: "category", Name: "Kategori Keşfi", Type: models.RewardCategory, Probability: 35, IsActive: true, Icon: "🎯", Color: "#3B82F6"},
		{ID: "discount-5", Name: "%5 Ceza İndirimi", Type: models.RewardPenaltyDiscount, Value: models.IntPtr(5), Probability: 25, IsActive: true, Icon: "💰", Color: "#10B981"},
		{ID: "borrow-ext", Name: "Ödünç Süresi +7 gün", Type: models.RewardBorrowExtension, Probability: 15, IsActive: true, Icon: "📚", Color: "#EC4899"},
		{ID: "discount-10", Name: "%10 Ceza İndirimi", Type: models.RewardPenaltyDiscount, Value: models.IntPtr(10), Probability: 12, IsActive: true, Icon: "💰", Color: "#059669"},
		{ID: "discount-20", Name: "%20 Ceza İndirimi", Type: models.RewardPenaltyDiscount, Value: models.IntPtr(20), Probability: 8, IsActive: true, Icon: "💰", Color: "#F59E0B"},
		{ID: "pass", Name: "Pas", Type: models.RewardPass, Probability: 2, IsActive: true, Icon: "📊", Color: "#6B7280"},
		{ID: "discount-50", Name: "%50 Ceza İndirimi", Type: models.RewardPenaltyDiscount, Value: models.IntPtr(50), Probability: 1.5, IsActive: true, Icon: "💰", Color: "#EAB308"},
		{ID: "spin-again", Name: "Yeniden Çevir", Type: models.RewardSpinAgain, Probability: 1, IsActive: true, Icon: "🔄", Color: "#8B5CF6"},
		{ID: "discount-100", Name: "%100 Ceza İndirimi", Type: models.RewardPenaltyDiscount, Value: models.IntPtr(100), Probability: 0.5, IsActive: true, Icon: "💰", Color: "#A855F7"},
	}
}

// DefaultWheel is the wheel created the first time id is requested and missing.
func DefaultWheel(id string, now time.Time) *models.WheelSettings {
	return &models.WheelSettings{
		ID:             id,
		Name:           "Günlük Çark",
		Rewards:        DefaultRewards(),
		IsActive:       true,
		DailySpinLimit: 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
