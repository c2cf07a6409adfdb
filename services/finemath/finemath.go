// Package finemath holds the date and money arithmetic shared by every fine code path.
package finemath

import (
	"time"

	"librarium/models"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// DaysOverdue returns ceil((reference - due) / 1 day), never negative.
func DaysOverdue(reference, due time.Time) int {
	diff := reference.Sub(due)
	if diff <= 0 {
		return 0
	}
	days := int(diff / day)
	if diff%day != 0 {
		days++
	}
	return days
}

// FineAmount is days * rate for positive days, else zero.
func FineAmount(daysOverdue int, ratePerDay float64) float64 {
	if daysOverdue <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(daysOverdue)).
		Mul(decimal.NewFromFloat(ratePerDay)).
		InexactFloat64()
}

// ApplyDiscount returns amount * (1 - percent/100).
func ApplyDiscount(amount float64, percent int) float64 {
	if percent <= 0 {
		return amount
	}
	factor := decimal.NewFromInt(int64(100 - percent)).Div(decimal.NewFromInt(100))
	return decimal.NewFromFloat(amount).Mul(factor).InexactFloat64()
}

// ReferenceDate picks the date a fine is measured against:
// the return request date, else the actual return date, else now.
func ReferenceDate(record *models.BorrowRecord, now time.Time) time.Time {
	if record.ReturnRequestDate != nil && !record.ReturnRequestDate.IsZero() {
		return *record.ReturnRequestDate
	}
	if record.ReturnedAt != nil && !record.ReturnedAt.IsZero() {
		return *record.ReturnedAt
	}
	return now
}

// Compute returns the days overdue and the undiscounted fine for record at now.
func Compute(record *models.BorrowRecord, ratePerDay float64, now time.Time) (int, float64) {
	days := DaysOverdue(ReferenceDate(record, now), record.DueDate)
	return days, FineAmount(days, ratePerDay)
}
