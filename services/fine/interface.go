package fine

import (
	"context"
	"time"

	"librarium/database"
	borrowRepo "librarium/database/repository/borrow"
	"librarium/models"
	"librarium/services/coupon"
	"librarium/services/ledger"
	"librarium/services/notification"
)

// FineService settles overdue fines. The per-day rate is always supplied by
// the caller, which reads it from the settings service.
type FineService interface {
	Quote(ctx context.Context, recordID string, ratePerDay float64) (*models.FineView, error)
	PayFine(ctx context.Context, req PayFineRequest) (*PayFineResult, error)
	PayFineBatch(ctx context.Context, recordIDs []string, ratePerDay float64) ([]models.BatchPaymentResult, error)
	UserSummary(ctx context.Context, userID string, ratePerDay float64) (*models.FineSummary, error)
	AdminSummary(ctx context.Context, ratePerDay float64, status models.FineStatus) (*models.FineSummary, error)
}

type PayFineRequest struct {
	RecordID   string  `json:"recordId"`
	RatePerDay float64 `json:"ratePerDay"`
	CouponID   string  `json:"couponId,omitempty"`
}

type PayFineResult struct {
	Record *models.BorrowRecord `json:"record"`
	Amount float64              `json:"amount"`
	Coupon *models.Coupon       `json:"coupon,omitempty"`
}

type DefaultFineService struct {
	Borrows  borrowRepo.BorrowRepository
	Coupons  coupon.CouponService
	Tx       database.Transactor
	Ledger   ledger.Recorder
	Notifier notification.NotificationService
	Now      func() time.Time
}

func NewDefaultFineService(
	borrows borrowRepo.BorrowRepository,
	coupons coupon.CouponService,
	tx database.Transactor,
	recorder ledger.Recorder,
	notifier notification.NotificationService,
) *DefaultFineService {
	return &DefaultFineService{
		Borrows:  borrows,
		Coupons:  coupons,
		Tx:       tx,
		Ledger:   recorder,
		Notifier: notifier,
	}
}

func (s *DefaultFineService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
