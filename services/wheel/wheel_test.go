package wheel

import (
	"context"
	"testing"
	"time"

	"librarium/database/repository/memory"
	"librarium/models"
	"librarium/services/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type mapCache struct {
	items       map[string]models.WheelSettings
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{items: map[string]models.WheelSettings{}}
}

func (c *mapCache) Get(_ context.Context, id string) (*models.WheelSettings, error) {
	w, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	w.Rewards = append([]models.Reward(nil), w.Rewards...)
	return &w, nil
}

func (c *mapCache) Set(_ context.Context, w *models.WheelSettings) error {
	cp := *w
	cp.Rewards = append([]models.Reward(nil), w.Rewards...)
	c.items[w.ID] = cp
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, id string) error {
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func newTestService() (*DefaultWheelService, *mapCache) {
	store := memory.NewStore()
	cache := newMapCache()
	current := settings.NewDefaultSettingsService(store.Settings(), 5, "spinWheel")
	svc := NewDefaultWheelService(store.Wheels(), cache, current, "spinWheel")
	svc.Now = func() time.Time { return adminNow }
	return svc, cache
}

func TestCurrentWheelSeedsDefaults(t *testing.T) {
	svc, _ := newTestService()
	w, err := svc.CurrentWheel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "spinWheel", w.ID)
	assert.True(t, w.IsActive)
	assert.Equal(t, 1, w.DailySpinLimit)
	require.Len(t, w.Rewards, 9)
	assert.Equal(t, "category", w.Rewards[0].ID)
	assert.InDelta(t, 100, w.TotalProbability(), 1e-9)
}

func TestGetUnknownWheel(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetWheel(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrWheelNotFound)
	_, err = svc.GetWheel(context.Background(), " ")
	assert.ErrorIs(t, err, ErrMissingWheelID)
}

func TestRewardValidation(t *testing.T) {
	testCases := []struct {
		name string
		in   RewardInput
		err  error
	}{
		{"empty name", RewardInput{Type: models.RewardPass}, ErrEmptyRewardName},
		{"negative", RewardInput{Name: "x", Type: models.RewardPass, Probability: -1}, ErrNegativeProbability},
		{"unknown type", RewardInput{Name: "x", Type: "jackpot"}, ErrUnknownRewardType},
		{"discount without value", RewardInput{Name: "x", Type: models.RewardPenaltyDiscount}, ErrInvalidRewardValue},
		{"discount bad value", RewardInput{Name: "x", Type: models.RewardShopDiscount, Value: models.IntPtr(15)}, ErrInvalidRewardValue},
		{"ok", RewardInput{Name: "x", Type: models.RewardShopDiscount, Value: models.IntPtr(10), Probability: 3}, nil},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReward(tt.in)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRewardLifecycle(t *testing.T) {
	svc, cache := newTestService()
	ctx := context.Background()

	added, err := svc.AddReward(ctx, "spinWheel", RewardInput{
		Name: "Kitap Ayracı", Type: models.RewardPass, Probability: 4, Icon: "🔖", Color: "#000000",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^custom-\d+-[0-9a-f]{8}$`, added.ID)
	assert.True(t, added.IsActive)
	assert.Contains(t, cache.invalidated, "spinWheel")

	rewards, err := svc.ListRewards(ctx, "spinWheel")
	require.NoError(t, err)
	require.Len(t, rewards, 10)
	assert.Equal(t, added.ID, rewards[9].ID, "new rewards are appended")

	inactive := false
	edited, err := svc.EditReward(ctx, "spinWheel", added.ID, RewardInput{
		Name: "Ayraç", Type: models.RewardPass, Probability: 2, IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayraç", edited.Name)
	assert.False(t, edited.IsActive)

	toggled, err := svc.ToggleReward(ctx, "spinWheel", added.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	require.NoError(t, svc.DeleteReward(ctx, "spinWheel", added.ID))
	assert.ErrorIs(t, svc.DeleteReward(ctx, "spinWheel", added.ID), ErrRewardNotFound)

	rewards, err = svc.ListRewards(ctx, "spinWheel")
	require.NoError(t, err)
	assert.Len(t, rewards, 9)
}

func TestUpdateProbabilitiesEnforcesHundred(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.UpdateProbabilities(ctx, "spinWheel", map[string]float64{"category": 40})
	assert.ErrorIs(t, err, ErrProbabilitySum)

	w, err := svc.GetWheel(ctx, "spinWheel")
	require.NoError(t, err)
	assert.Equal(t, 35.0, w.Rewards[0].Probability, "rejected update leaves the wheel untouched")

	w, err = svc.UpdateProbabilities(ctx, "spinWheel", map[string]float64{"category": 30, "discount-5": 30})
	require.NoError(t, err)
	assert.InDelta(t, 100, w.TotalProbability(), 1e-9)

	_, err = svc.UpdateProbabilities(ctx, "spinWheel", map[string]float64{"ghost": 1})
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestWheelAdministration(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateWheel(ctx, "Yaz Çarkı")
	require.NoError(t, err)
	assert.Equal(t, "wheel-1714550400000", created.ID)
	assert.False(t, created.IsActive)

	toggled, err := svc.ToggleWheel(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	limited, err := svc.SetDailySpinLimit(ctx, created.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, limited.DailySpinLimit)
	_, err = svc.SetDailySpinLimit(ctx, created.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidSpinLimit)

	_, err = svc.SetCurrentWheel(ctx, created.ID)
	require.NoError(t, err)
	current, err := svc.CurrentWheel(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)
	assert.Equal(t, 3, current.DailySpinLimit)

	wheels, err := svc.ListWheels(ctx)
	require.NoError(t, err)
	assert.Len(t, wheels, 2)

	_, err = svc.SetCurrentWheel(ctx, "missing")
	assert.ErrorIs(t, err, ErrWheelNotFound)
}
