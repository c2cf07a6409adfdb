package spin

import (
	"context"
	"math/rand"
	"time"

	"librarium/database"
	borrowRepo "librarium/database/repository/borrow"
	spinRepo "librarium/database/repository/spin"
	"librarium/models"
	"librarium/services/coupon"
	"librarium/services/notification"
)

// SpinService runs the reward wheel for end users.
type SpinService interface {
	Spin(ctx context.Context, userID string) (*models.SpinResult, error)
	Status(ctx context.Context, userID string) (*models.SpinStatus, error)
}

// WheelSource yields the wheel ordinary users spin.
type WheelSource interface {
	CurrentWheel(ctx context.Context) (*models.WheelSettings, error)
}

type DefaultSpinService struct {
	Wheels     WheelSource
	SpinData   spinRepo.SpinDataRepository
	SpinLogs   spinRepo.SpinLogRepository
	Borrows    borrowRepo.BorrowRepository
	Coupons    coupon.CouponService
	Tx         database.Transactor
	Locker     Locker
	Notifier   notification.NotificationService
	Categories []string
	Location   *time.Location
	Rand       Rand
	Now        func() time.Time
}

func NewDefaultSpinService(
	wheels WheelSource,
	spinData spinRepo.SpinDataRepository,
	spinLogs spinRepo.SpinLogRepository,
	borrows borrowRepo.BorrowRepository,
	coupons coupon.CouponService,
	tx database.Transactor,
	categories []string,
	loc *time.Location,
) *DefaultSpinService {
	return &DefaultSpinService{
		Wheels:     wheels,
		SpinData:   spinData,
		SpinLogs:   spinLogs,
		Borrows:    borrows,
		Coupons:    coupons,
		Tx:         tx,
		Categories: categories,
		Location:   loc,
	}
}

// globalRand uses the auto-seeded, goroutine-safe top-level source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Intn(n int) int   { return rand.Intn(n) }

func (s *DefaultSpinService) rnd() Rand {
	if s.Rand != nil {
		return s.Rand
	}
	return globalRand{}
}

// now is expressed in the spin timezone so every day boundary agrees.
func (s *DefaultSpinService) now() time.Time {
	t := time.Now()
	if s.Now != nil {
		t = s.Now()
	}
	if s.Location != nil {
		t = t.In(s.Location)
	}
	return t
}
