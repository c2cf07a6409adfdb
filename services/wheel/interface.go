package wheel

import (
	"context"
	"time"

	wheelRepo "librarium/database/repository/wheel"
	"librarium/models"
)

// WheelService administers the reward catalog of every named wheel.
type WheelService interface {
	ListWheels(ctx context.Context) ([]models.WheelSettings, error)
	GetWheel(ctx context.Context, id string) (*models.WheelSettings, error)
	CreateWheel(ctx context.Context, name string) (*models.WheelSettings, error)
	SetWheelActive(ctx context.Context, id string, active bool) (*models.WheelSettings, error)
	ToggleWheel(ctx context.Context, id string) (*models.WheelSettings, error)
	SetDailySpinLimit(ctx context.Context, id string, limit int) (*models.WheelSettings, error)
	CurrentWheel(ctx context.Context) (*models.WheelSettings, error)
	SetCurrentWheel(ctx context.Context, id string) (*models.WheelSettings, error)

	ListRewards(ctx context.Context, wheelID string) ([]models.Reward, error)
	AddReward(ctx context.Context, wheelID string, in RewardInput) (*models.Reward, error)
	EditReward(ctx context.Context, wheelID, rewardID string, in RewardInput) (*models.Reward, error)
	DeleteReward(ctx context.Context, wheelID, rewardID string) error
	ToggleReward(ctx context.Context, wheelID, rewardID string) (*models.Reward, error)
	UpdateProbabilities(ctx context.Context, wheelID string, weights map[string]float64) (*models.WheelSettings, error)
}

// CurrentWheelStore remembers which wheel ordinary users spin.
type CurrentWheelStore interface {
	CurrentWheelID(ctx context.Context) (string, error)
	SetCurrentWheelID(ctx context.Context, wheelID string) error
}

// RewardInput is the editable part of a reward. A nil IsActive keeps the
// current state on edit and means active on add.
type RewardInput struct {
	Name        string            `json:"name"`
	Type        models.RewardType `json:"type"`
	Value       *int              `json:"value,omitempty"`
	Probability float64           `json:"probability"`
	IsActive    *bool             `json:"isActive,omitempty"`
	Icon        string            `json:"icon"`
	Color       string            `json:"color"`
	Description string            `json:"description,omitempty"`
}

type DefaultWheelService struct {
	Repo           wheelRepo.WheelRepository
	Cache          WheelCache
	Current        CurrentWheelStore
	DefaultWheelID string
	Now            func() time.Time
}

func NewDefaultWheelService(repo wheelRepo.WheelRepository, cache WheelCache, current CurrentWheelStore, defaultWheelID string) *DefaultWheelService {
	return &DefaultWheelService{
		Repo:           repo,
		Cache:          cache,
		Current:        current,
		DefaultWheelID: defaultWheelID,
	}
}

func (s *DefaultWheelService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
