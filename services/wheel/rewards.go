package wheel

import (
	"context"
	"fmt"
	"math"
	"strings"

	"librarium/models"
	"librarium/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// probabilityTolerance absorbs float noise like 33.3 + 33.3 + 33.4.
const probabilityTolerance = 0.1

func validateReward(in RewardInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyRewardName
	}
	if in.Probability < 0 || math.IsNaN(in.Probability) || math.IsInf(in.Probability, 0) {
		return ErrNegativeProbability
	}
	if !in.Type.Valid() {
		return ErrUnknownRewardType
	}
	if in.Type.IsDiscount() && (in.Value == nil || !models.IsAllowedDiscount(*in.Value)) {
		return ErrInvalidRewardValue
	}
	return nil
}

func applyInput(r *models.Reward, in RewardInput) {
	r.Name = strings.TrimSpace(in.Name)
	r.Type = in.Type
	r.Probability = in.Probability
	r.Icon = in.Icon
	r.Color = in.Color
	r.Description = in.Description
	r.Value = nil
	if in.Value != nil {
		r.Value = models.IntPtr(*in.Value)
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
}

func (s *DefaultWheelService) ListRewards(ctx context.Context, wheelID string) ([]models.Reward, error) {
	w, err := s.load(ctx, wheelID)
	if err != nil {
		return nil, err
	}
	return w.Rewards, nil
}

// AddReward appends to the catalog. New rewards land at the end of the wheel.
func (s *DefaultWheelService) AddReward(ctx context.Context, wheelID string, in RewardInput) (*models.Reward, error) {
	if err := validateReward(in); err != nil {
		return nil, err
	}
	w, err := s.load(ctx, wheelID)
	if err != nil {
		return nil, err
	}

	r := models.Reward{
		ID:       fmt.Sprintf("custom-%d-%s", s.now().UnixMilli(), uuid.New().String()[:8]),
		IsActive: true,
	}
	applyInput(&r, in)
	w.Rewards = append(w.Rewards, r)
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	s.warnIfUnbalanced(w)
	utils.GetLogger().Info("reward added", zap.String("wheelID", w.ID), zap.String("rewardID", r.ID))
	return &r, nil
}

func (s *DefaultWheelService) EditReward(ctx context.Context, wheelID, rewardID string, in RewardInput) (*models.Reward, error) {
	if err := validateReward(in); err != nil {
		return nil, err
	}
	w, err := s.load(ctx, wheelID)
	if err != nil {
		return nil, err
	}
	i := models.RewardIndex(w.Rewards, rewardID)
	if i < 0 {
		return nil, ErrRewardNotFound
	}
	applyInput(&w.Rewards[i], in)
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	s.warnIfUnbalanced(w)
	utils.GetLogger().Info("reward edited", zap.String("wheelID", w.ID), zap.String("rewardID", rewardID))
	r := w.Rewards[i]
	return &r, nil
}

func (s *DefaultWheelService) DeleteReward(ctx context.Context, wheelID, rewardID string) error {
	w, err := s.load(ctx, wheelID)
	if err != nil {
		return err
	}
	i := models.RewardIndex(w.Rewards, rewardID)
	if i < 0 {
		return ErrRewardNotFound
	}
	w.Rewards = append(w.Rewards[:i], w.Rewards[i+1:]...)
	if err := s.save(ctx, w); err != nil {
		return err
	}
	utils.GetLogger().Info("reward deleted", zap.String("wheelID", w.ID), zap.String("rewardID", rewardID))
	return nil
}

func (s *DefaultWheelService) ToggleReward(ctx context.Context, wheelID, rewardID string) (*models.Reward, error) {
	w, err := s.load(ctx, wheelID)
	if err != nil {
		return nil, err
	}
	i := models.RewardIndex(w.Rewards, rewardID)
	if i < 0 {
		return nil, ErrRewardNotFound
	}
	w.Rewards[i].IsActive = !w.Rewards[i].IsActive
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	r := w.Rewards[i]
	return &r, nil
}

// UpdateProbabilities sets several weights at once. The resulting catalog must
// add up to 100; rewards not named in weights keep their weight.
func (s *DefaultWheelService) UpdateProbabilities(ctx context.Context, wheelID string, weights map[string]float64) (*models.WheelSettings, error) {
	w, err := s.load(ctx, wheelID)
	if err != nil {
		return nil, err
	}
	for id, p := range weights {
		i := models.RewardIndex(w.Rewards, id)
		if i < 0 {
			return nil, ErrRewardNotFound
		}
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, ErrNegativeProbability
		}
		w.Rewards[i].Probability = p
	}
	if math.Abs(w.TotalProbability()-100) > probabilityTolerance {
		return nil, ErrProbabilitySum
	}
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("reward probabilities updated", zap.String("wheelID", w.ID), zap.Int("changed", len(weights)))
	return w, nil
}

// Selection normalizes by the actual sum, so an off-100 catalog still works.
func (s *DefaultWheelService) warnIfUnbalanced(w *models.WheelSettings) {
	if total := w.TotalProbability(); math.Abs(total-100) > probabilityTolerance {
		utils.GetLogger().Warn("wheel probabilities do not add up to 100",
			zap.String("wheelID", w.ID), zap.Float64("total", total))
	}
}
