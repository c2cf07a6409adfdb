package wheel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"librarium/database"
	"librarium/models"
	"librarium/utils"

	"go.uber.org/zap"
)

// load reads a wheel through the cache. The default wheel is seeded on first use.
func (s *DefaultWheelService) load(ctx context.Context, id string) (*models.WheelSettings, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingWheelID
	}
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, id)
		if err != nil {
			utils.GetLogger().Warn("wheel cache read failed", zap.String("wheelID", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	w, err := s.Repo.Get(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		if id != s.DefaultWheelID {
			return nil, ErrWheelNotFound
		}
		w = DefaultWheel(id, s.now())
		if err := s.Repo.Save(ctx, w); err != nil {
			return nil, utils.StorageError("seed default wheel", err)
		}
		utils.GetLogger().Info("seeded default wheel", zap.String("wheelID", id))
	} else if err != nil {
		return nil, utils.StorageError("get wheel", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, w); err != nil {
			utils.GetLogger().Warn("wheel cache write failed", zap.String("wheelID", id), zap.Error(err))
		}
	}
	return w, nil
}

// save writes the whole document; concurrent admin edits are last-write-wins.
func (s *DefaultWheelService) save(ctx context.Context, w *models.WheelSettings) error {
	w.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, w); err != nil {
		return utils.StorageError("save wheel", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, w.ID); err != nil {
			utils.GetLogger().Warn("wheel cache invalidation failed", zap.String("wheelID", w.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultWheelService) ListWheels(ctx context.Context) ([]models.WheelSettings, error) {
	// Make sure the live wheel shows up even before anyone spun it.
	if _, err := s.load(ctx, s.DefaultWheelID); err != nil {
		return nil, err
	}
	wheels, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.StorageError("list wheels", err)
	}
	return wheels, nil
}

func (s *DefaultWheelService) GetWheel(ctx context.Context, id string) (*models.WheelSettings, error) {
	return s.load(ctx, id)
}

// CreateWheel starts a new wheel from the default catalog, inactive until an admin enables it.
func (s *DefaultWheelService) CreateWheel(ctx context.Context, name string) (*models.WheelSettings, error) {
	now := s.now()
	w := DefaultWheel(fmt.Sprintf("wheel-%d", now.UnixMilli()), now)
	w.IsActive = false
	if name = strings.TrimSpace(name); name != "" {
		w.Name = name
	}
	if _, err := s.Repo.Get(ctx, w.ID); err == nil {
		return nil, utils.NewConflictError("wheelExists", "a wheel was created at the same instant, retry")
	}
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("wheel created", zap.String("wheelID", w.ID), zap.String("name", w.Name))
	return w, nil
}

func (s *DefaultWheelService) SetWheelActive(ctx context.Context, id string, active bool) (*models.WheelSettings, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	w.IsActive = active
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("wheel activity changed", zap.String("wheelID", id), zap.Bool("active", active))
	return w, nil
}

func (s *DefaultWheelService) ToggleWheel(ctx context.Context, id string) (*models.WheelSettings, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.SetWheelActive(ctx, id, !w.IsActive)
}

func (s *DefaultWheelService) SetDailySpinLimit(ctx context.Context, id string, limit int) (*models.WheelSettings, error) {
	if limit < 1 {
		return nil, ErrInvalidSpinLimit
	}
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	w.DailySpinLimit = limit
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// CurrentWheel is the wheel ordinary users spin.
func (s *DefaultWheelService) CurrentWheel(ctx context.Context) (*models.WheelSettings, error) {
	id := s.DefaultWheelID
	if s.Current != nil {
		current, err := s.Current.CurrentWheelID(ctx)
		if err != nil {
			return nil, err
		}
		if current != "" {
			id = current
		}
	}
	w, err := s.load(ctx, id)
	if errors.Is(err, ErrWheelNotFound) && id != s.DefaultWheelID {
		utils.GetLogger().Warn("current wheel missing, falling back to default", zap.String("wheelID", id))
		return s.load(ctx, s.DefaultWheelID)
	}
	return w, err
}

func (s *DefaultWheelService) SetCurrentWheel(ctx context.Context, id string) (*models.WheelSettings, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Current == nil {
		return nil, utils.NewPreconditionError("currentWheelFixed", "the live wheel cannot be changed")
	}
	if err := s.Current.SetCurrentWheelID(ctx, w.ID); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("current wheel switched", zap.String("wheelID", w.ID))
	return w, nil
}
