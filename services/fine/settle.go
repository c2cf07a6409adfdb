package fine

import (
	"math"
	"time"

	"librarium/models"
	"librarium/services/finemath"
)

// Settle computes the snapshot written when record is paid at now.
// It does not touch storage.
func Settle(record *models.BorrowRecord, ratePerDay float64, discountPercent *int, now time.Time) (models.FineSnapshot, error) {
	if !validRate(ratePerDay) {
		return models.FineSnapshot{}, ErrInvalidRate
	}
	if record.IsPaid() {
		return models.FineSnapshot{}, ErrAlreadyPaid
	}

	days, original := finemath.Compute(record, ratePerDay, now)
	if days <= 0 {
		return models.FineSnapshot{}, ErrNotOverdue
	}

	snapshot := models.FineSnapshot{
		AmountSnapshot:      original,
		RateSnapshot:        ratePerDay,
		DaysOverdueSnapshot: days,
		PaymentDate:         now,
	}
	if discountPercent != nil {
		if !models.IsAllowedDiscount(*discountPercent) {
			return models.FineSnapshot{}, ErrInvalidDiscount
		}
		pct := *discountPercent
		snapshot.AmountSnapshot = finemath.ApplyDiscount(original, pct)
		snapshot.DiscountApplied = &pct
		snapshot.OriginalFineAmount = &original
	}
	return snapshot, nil
}

// View is what a user sees for record at now. Paid records always show
// their snapshot.
func View(record *models.BorrowRecord, ratePerDay float64, now time.Time) models.FineView {
	view := models.FineView{
		Record:        *record,
		ReferenceDate: finemath.ReferenceDate(record, now),
		Paid:          record.IsPaid(),
	}
	if record.IsPaid() {
		if record.Fine != nil {
			view.DaysOverdue = record.Fine.DaysOverdueSnapshot
			view.Amount = record.Fine.AmountSnapshot
		}
		return view
	}
	view.DaysOverdue, view.Amount = finemath.Compute(record, ratePerDay, now)
	return view
}

func validRate(rate float64) bool {
	return rate >= 0 && !math.IsNaN(rate) && !math.IsInf(rate, 0)
}
