package settings

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"librarium/database"
	settingsRepo "librarium/database/repository/settings"
	"librarium/models"
	"librarium/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidFineRate = utils.NewValidationError("invalidFineRate", "fine rate must be a non-negative number")
	ErrInvalidWheelID  = utils.NewValidationError("invalidWheelId", "wheel id is required")
)

// SettingsService reads and updates the admin-mutable global rules.
type SettingsService interface {
	GetFineRate(ctx context.Context) (float64, error)
	SetFineRate(ctx context.Context, rate float64) (*models.AppSettings, error)
	CurrentWheelID(ctx context.Context) (string, error)
	SetCurrentWheelID(ctx context.Context, wheelID string) error
}

type DefaultSettingsService struct {
	Repo              settingsRepo.SettingsRepository
	DefaultFinePerDay float64
	DefaultWheelID    string
	Now               func() time.Time
}

func NewDefaultSettingsService(repo settingsRepo.SettingsRepository, defaultFinePerDay float64, defaultWheelID string) *DefaultSettingsService {
	return &DefaultSettingsService{
		Repo:              repo,
		DefaultFinePerDay: defaultFinePerDay,
		DefaultWheelID:    defaultWheelID,
	}
}

// load returns the stored settings, or the configured defaults when none exist yet.
func (s *DefaultSettingsService) load(ctx context.Context) (*models.AppSettings, error) {
	stored, err := s.Repo.Get(ctx)
	if errors.Is(err, database.ErrNotFound) {
		return &models.AppSettings{
			ID:             models.AppSettingsID,
			FinePerDay:     s.DefaultFinePerDay,
			CurrentWheelID: s.DefaultWheelID,
		}, nil
	}
	if err != nil {
		return nil, utils.StorageError("load settings", err)
	}
	if stored.CurrentWheelID == "" {
		stored.CurrentWheelID = s.DefaultWheelID
	}
	return stored, nil
}

func (s *DefaultSettingsService) GetFineRate(ctx context.Context) (float64, error) {
	current, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return current.FinePerDay, nil
}

// SetFineRate affects only fines that are still unpaid. Paid fines keep their snapshot.
func (s *DefaultSettingsService) SetFineRate(ctx context.Context, rate float64) (*models.AppSettings, error) {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, ErrInvalidFineRate
	}
	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	previous := current.FinePerDay
	current.FinePerDay = rate
	current.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, current); err != nil {
		return nil, utils.StorageError("save settings", err)
	}
	utils.GetLogger().Info("fine rate updated", zap.Float64("from", previous), zap.Float64("to", rate))
	return current, nil
}

func (s *DefaultSettingsService) CurrentWheelID(ctx context.Context) (string, error) {
	current, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return current.CurrentWheelID, nil
}

func (s *DefaultSettingsService) SetCurrentWheelID(ctx context.Context, wheelID string) error {
	wheelID = strings.TrimSpace(wheelID)
	if wheelID == "" {
		return ErrInvalidWheelID
	}
	current, err := s.load(ctx)
	if err != nil {
		return err
	}
	current.CurrentWheelID = wheelID
	current.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, current); err != nil {
		return utils.StorageError("save settings", err)
	}
	return nil
}

func (s *DefaultSettingsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
