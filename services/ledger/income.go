package ledger

import (
	"fmt"
	"time"

	"librarium/models"
)

const FineIncomeCategory = "fine"

// FineReference identifies the fine a ledger entry settles.
func FineReference(recordID string) string {
	return "fine:" + recordID
}

// FineIncome builds the ledger entry for a paid record.
func FineIncome(record *models.BorrowRecord, now time.Time) models.LedgerTransaction {
	var amount float64
	date := now
	if record.Fine != nil {
		amount = record.Fine.AmountSnapshot
		date = record.Fine.PaymentDate
	}

	title := record.BookTitle
	if title == "" {
		title = record.BookID
	}
	desc := fmt.Sprintf("Overdue fine for %q paid by user %s", title, record.BorrowedBy)
	if record.Fine != nil && record.Fine.DiscountApplied != nil {
		desc += fmt.Sprintf(" (%d%% coupon)", *record.Fine.DiscountApplied)
	}

	return models.LedgerTransaction{
		Type:         models.TransactionIncome,
		Category:     FineIncomeCategory,
		Amount:       amount,
		Description:  desc,
		ReferenceKey: FineReference(record.ID),
		UserID:       record.BorrowedBy,
		Date:         date,
	}
}
