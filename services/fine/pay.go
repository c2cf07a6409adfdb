package fine

import (
	"context"
	"errors"
	"strings"
	"time"

	"librarium/database"
	"librarium/models"
	"librarium/services/coupon"
	"librarium/services/ledger"
	"librarium/utils"

	"go.uber.org/zap"
)

// PayFine settles one record, optionally with a coupon owned by the borrower.
// Redeeming the coupon and writing the snapshot commit together.
func (s *DefaultFineService) PayFine(ctx context.Context, req PayFineRequest) (*PayFineResult, error) {
	req.RecordID = strings.TrimSpace(req.RecordID)
	req.CouponID = strings.TrimSpace(req.CouponID)
	if req.RecordID == "" {
		return nil, ErrMissingRecord
	}

	now := s.now()
	var result *PayFineResult
	err := s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.settle(txCtx, req, now)
		return err
	})
	if err != nil {
		utils.GetLogger().Warn("fine payment failed",
			zap.String("recordID", req.RecordID),
			zap.String("couponID", req.CouponID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.GetLogger().Info("fine paid",
		zap.String("recordID", result.Record.ID),
		zap.String("userID", result.Record.BorrowedBy),
		zap.Float64("amount", result.Amount),
		zap.String("couponID", req.CouponID),
	)
	s.afterPayment(ctx, result.Record)
	return result, nil
}

func (s *DefaultFineService) settle(ctx context.Context, req PayFineRequest, now time.Time) (*PayFineResult, error) {
	record, err := s.Borrows.GetByID(ctx, req.RecordID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, utils.StorageError("get borrow record", err)
	}
	if record.IsPaid() {
		return nil, ErrAlreadyPaid
	}

	var discount *int
	var used *models.Coupon
	if req.CouponID != "" {
		c, err := s.Coupons.Get(ctx, record.BorrowedBy, req.CouponID)
		if err != nil {
			return nil, err
		}
		if c.Type != models.CouponPenaltyDiscount {
			return nil, coupon.ErrCouponTypeMismatch
		}
		if !c.Matches(record.Category) {
			return nil, coupon.ErrCategoryMismatch
		}
		pct := c.DiscountPercent
		discount = &pct
		used = c
	}

	snapshot, err := Settle(record, req.RatePerDay, discount, now)
	if err != nil {
		return nil, err
	}

	if used != nil {
		used, err = s.Coupons.Redeem(ctx, used.ID, record.BorrowedBy, record.UsageKey())
		if err != nil {
			return nil, err
		}
		snapshot.CouponID = used.ID
	}

	if err := s.Borrows.MarkFinePaid(ctx, record.ID, snapshot); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrAlreadyPaid
		}
		return nil, utils.StorageError("mark fine paid", err)
	}

	record.FineStatus = models.FinePaid
	record.Fine = &snapshot
	return &PayFineResult{Record: record, Amount: snapshot.AmountSnapshot, Coupon: used}, nil
}

// afterPayment reports income and notifies the borrower. Neither may undo
// the committed payment, so failures are only logged.
func (s *DefaultFineService) afterPayment(ctx context.Context, record *models.BorrowRecord) {
	if s.Ledger != nil {
		tx := ledger.FineIncome(record, s.now())
		if err := s.Ledger.RecordIncome(ctx, tx); err != nil {
			utils.GetLogger().Error("ledger notification failed",
				zap.String("recordID", record.ID),
				zap.String("userID", record.BorrowedBy),
				zap.String("referenceKey", tx.ReferenceKey),
				zap.Float64("amount", tx.Amount),
				zap.Time("paymentDate", tx.Date),
				zap.Error(err),
			)
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyFinePaid(ctx, record); err != nil {
			utils.GetLogger().Warn("fine receipt push failed",
				zap.String("recordID", record.ID),
				zap.String("userID", record.BorrowedBy),
				zap.Error(err),
			)
		}
	}
}

// PayFineBatch pays each record as its own unit of work. A failure is
// reported in that record's result and never rolls back the others.
func (s *DefaultFineService) PayFineBatch(ctx context.Context, recordIDs []string, ratePerDay float64) ([]models.BatchPaymentResult, error) {
	if len(recordIDs) == 0 {
		return nil, ErrEmptyBatch
	}
	if !validRate(ratePerDay) {
		return nil, ErrInvalidRate
	}

	results := make([]models.BatchPaymentResult, 0, len(recordIDs))
	var paid int
	for _, id := range recordIDs {
		res := models.BatchPaymentResult{RecordID: id}
		out, err := s.PayFine(ctx, PayFineRequest{RecordID: id, RatePerDay: ratePerDay})
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Amount = out.Amount
			paid++
		}
		results = append(results, res)
	}

	utils.GetLogger().Info("batch fine payment finished",
		zap.Int("requested", len(recordIDs)),
		zap.Int("paid", paid),
	)
	return results, nil
}
