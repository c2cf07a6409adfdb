package fine

import (
	"context"
	"errors"
	"strings"

	"librarium/database"
	"librarium/models"
	"librarium/utils"

	"github.com/shopspring/decimal"
)

// Quote returns the amount that PayFine would charge right now.
func (s *DefaultFineService) Quote(ctx context.Context, recordID string, ratePerDay float64) (*models.FineView, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return nil, ErrMissingRecord
	}
	if !validRate(ratePerDay) {
		return nil, ErrInvalidRate
	}
	record, err := s.Borrows.GetByID(ctx, recordID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, utils.StorageError("get borrow record", err)
	}
	view := View(record, ratePerDay, s.now())
	return &view, nil
}

// UserSummary lists the user's fined records, paid and unpaid.
func (s *DefaultFineService) UserSummary(ctx context.Context, userID string, ratePerDay float64) (*models.FineSummary, error) {
	if !validRate(ratePerDay) {
		return nil, ErrInvalidRate
	}
	records, err := s.Borrows.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.StorageError("list borrow records", err)
	}
	return s.summarize(records, ratePerDay), nil
}

// AdminSummary lists fined records of every user, optionally filtered by status.
func (s *DefaultFineService) AdminSummary(ctx context.Context, ratePerDay float64, status models.FineStatus) (*models.FineSummary, error) {
	if !validRate(ratePerDay) {
		return nil, ErrInvalidRate
	}
	switch status {
	case "", models.FinePending, models.FinePaid:
	default:
		return nil, utils.NewValidationError("invalidFineStatus", "status must be pending or paid")
	}
	records, err := s.Borrows.ListByFineStatus(ctx, status)
	if err != nil {
		return nil, utils.StorageError("list borrow records", err)
	}
	return s.summarize(records, ratePerDay), nil
}

func (s *DefaultFineService) summarize(records []models.BorrowRecord, ratePerDay float64) *models.FineSummary {
	now := s.now()
	summary := &models.FineSummary{Fines: []models.FineView{}, RatePerDay: ratePerDay}
	unpaid, paid := decimal.Zero, decimal.Zero
	for i := range records {
		view := View(&records[i], ratePerDay, now)
		if view.DaysOverdue <= 0 && !view.Paid {
			continue
		}
		summary.Fines = append(summary.Fines, view)
		amount := decimal.NewFromFloat(view.Amount)
		if view.Paid {
			paid = paid.Add(amount)
			continue
		}
		unpaid = unpaid.Add(amount)
		summary.OutstandingRecs++
	}
	summary.TotalUnpaid = unpaid.InexactFloat64()
	summary.TotalPaid = paid.InexactFloat64()
	return summary
}
