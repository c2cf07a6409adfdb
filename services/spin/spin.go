package spin

import (
	"context"
	"errors"
	"strings"

	"librarium/database"
	"librarium/models"
	"librarium/services/coupon"
	"librarium/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spin draws a reward for userID. Spin bookkeeping, the reward's side effect
// and the audit entry commit together or not at all.
func (s *DefaultSpinService) Spin(ctx context.Context, userID string) (*models.SpinResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUser
	}

	if s.Locker != nil {
		release, err := s.Locker.Acquire(ctx, userID)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	wheel, err := s.Wheels.CurrentWheel(ctx)
	if err != nil {
		return nil, err
	}
	if !wheel.IsActive {
		return nil, ErrWheelInactive
	}
	active := wheel.ActiveRewards()

	now := s.now()
	var result *models.SpinResult
	err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		data, err := s.loadData(txCtx, userID)
		if err != nil {
			return err
		}
		if !CanSpin(data, wheel, now) {
			return ErrNotEligible
		}

		reward, err := SelectReward(active, s.rnd())
		if err != nil {
			return err
		}
		var category *string
		if reward.Type == models.RewardCategory && len(s.Categories) > 0 {
			picked := s.Categories[s.rnd().Intn(len(s.Categories))]
			category = &picked
		}

		usedExtra := applySpin(data, wheel, reward, now)
		if err := s.SpinData.Save(txCtx, data); err != nil {
			return utils.StorageError("save spin data", err)
		}

		minted, err := s.materialize(txCtx, userID, reward, category)
		if err != nil {
			return err
		}

		entry := &models.SpinLogEntry{
			ID:          uuid.New().String(),
			UserID:      userID,
			WheelID:     wheel.ID,
			RewardID:    reward.ID,
			RewardName:  reward.Name,
			RewardType:  reward.Type,
			RewardValue: reward.Value,
			Category:    category,
			UsedExtra:   usedExtra,
			Timestamp:   now,
		}
		if err := s.SpinLogs.Append(txCtx, entry); err != nil {
			return utils.StorageError("append spin log", err)
		}

		result = &models.SpinResult{
			Reward:   reward,
			Category: category,
			Rotation: Rotation(models.RewardIndex(active, reward.ID), len(active)),
			Coupon:   minted,
			SpinData: data,
		}
		return nil
	})
	if err != nil {
		utils.GetLogger().Warn("spin failed", zap.String("userID", userID), zap.Time("at", now), zap.Error(err))
		return nil, err
	}

	utils.GetLogger().Info("wheel spun",
		zap.String("userID", userID),
		zap.String("wheelID", wheel.ID),
		zap.String("rewardID", result.Reward.ID),
		zap.String("rewardType", string(result.Reward.Type)),
		zap.Int("extraSpins", result.SpinData.ExtraSpins),
	)
	if s.Notifier != nil {
		if err := s.Notifier.NotifySpinReward(ctx, userID, result); err != nil {
			utils.GetLogger().Warn("spin reward push failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return result, nil
}

// materialize performs the external side effect of reward, if it has one.
func (s *DefaultSpinService) materialize(ctx context.Context, userID string, reward models.Reward, category *string) (*models.Coupon, error) {
	switch reward.Type {
	case models.RewardPenaltyDiscount, models.RewardShopDiscount:
		if reward.Value == nil {
			utils.GetLogger().Warn("discount reward without value, no coupon minted",
				zap.String("userID", userID), zap.String("rewardID", reward.ID))
			return nil, nil
		}
		couponType, _ := reward.Type.CouponType()
		return s.Coupons.CreateCoupon(ctx, coupon.CreateCouponInput{
			UserID:          userID,
			Type:            couponType,
			DiscountPercent: *reward.Value,
			Category:        category,
			WonFromSpin:     true,
		})
	case models.RewardBorrowExtension:
		n, err := s.Borrows.RaiseExtensionAllowance(ctx, userID, 2)
		if err != nil {
			return nil, utils.StorageError("raise extension allowance", err)
		}
		utils.GetLogger().Info("extension allowance raised", zap.String("userID", userID), zap.Int64("records", n))
		return nil, nil
	case models.RewardSpinAgain, models.RewardPass, models.RewardCategory:
		return nil, nil
	default:
		return nil, ErrUnhandledReward
	}
}

func (s *DefaultSpinService) loadData(ctx context.Context, userID string) (*models.UserSpinData, error) {
	data, err := s.SpinData.Get(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return models.NewUserSpinData(userID), nil
	}
	if err != nil {
		return nil, utils.StorageError("get spin data", err)
	}
	if data.BorrowExtensionCount == 0 {
		data.BorrowExtensionCount = 1
	}
	return data, nil
}

// Status tells the client whether a spin is possible now and, if not, how long to wait.
func (s *DefaultSpinService) Status(ctx context.Context, userID string) (*models.SpinStatus, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUser
	}
	wheel, err := s.Wheels.CurrentWheel(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.loadData(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &models.SpinStatus{
		SpinData:          data,
		CanSpin:           CanSpin(data, wheel, now),
		HasSpunToday:      SpinsToday(data, now) > 0,
		TimeUntilNextSpin: TimeUntilNextSpin(data, wheel, now),
		WheelID:           wheel.ID,
	}, nil
}
