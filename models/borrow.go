package models

import "time"

type ReturnStatus string

const (
	ReturnBorrowed ReturnStatus = "borrowed"
	ReturnPending  ReturnStatus = "pending"
	ReturnReturned ReturnStatus = "returned"
)

type FineStatus string

const (
	FinePending FineStatus = "pending"
	FinePaid    FineStatus = "paid"
)

// BorrowRecord is a borrowed copy as owned by the circulation side.
// The id follows the `<userId>_<bookId>` convention.
type BorrowRecord struct {
	ID                string       `bson:"id" json:"id"`
	BookID            string       `bson:"bookId" json:"bookId"`
	BookTitle         string       `bson:"bookTitle,omitempty" json:"bookTitle,omitempty"`
	Category          string       `bson:"category,omitempty" json:"category,omitempty"`
	BorrowedBy        string       `bson:"borrowedBy" json:"borrowedBy"`
	BorrowedAt        time.Time    `bson:"borrowedAt" json:"borrowedAt"`
	DueDate           time.Time    `bson:"dueDate" json:"dueDate"`
	ReturnedAt        *time.Time   `bson:"returnedAt,omitempty" json:"returnedAt,omitempty"`
	ReturnRequestDate *time.Time   `bson:"returnRequestDate,omitempty" json:"returnRequestDate,omitempty"`
	ReturnStatus      ReturnStatus `bson:"returnStatus" json:"returnStatus"`
	FineStatus        FineStatus   `bson:"fineStatus" json:"fineStatus"`
	Extended          bool         `bson:"extended" json:"extended"`
	MaxExtensions     int          `bson:"maxExtensions" json:"maxExtensions"`

	// Set once, when the fine is paid. Never recomputed.
	Fine *FineSnapshot `bson:"fine,omitempty" json:"fine,omitempty"`
}

// FineSnapshot is the permanent record of what was charged.
type FineSnapshot struct {
	AmountSnapshot      float64   `bson:"fineAmountSnapshot" json:"fineAmountSnapshot"`
	RateSnapshot        float64   `bson:"fineRateSnapshot" json:"fineRateSnapshot"`
	DaysOverdueSnapshot int       `bson:"daysOverdueSnapshot" json:"daysOverdueSnapshot"`
	DiscountApplied     *int      `bson:"discountApplied,omitempty" json:"discountApplied,omitempty"`
	OriginalFineAmount  *float64  `bson:"originalFineAmount,omitempty" json:"originalFineAmount,omitempty"`
	CouponID            string    `bson:"couponId,omitempty" json:"couponId,omitempty"`
	PaymentDate         time.Time `bson:"paymentDate" json:"paymentDate"`
}

// IsPaid reports whether the fine has reached its terminal state.
func (b *BorrowRecord) IsPaid() bool {
	return b.FineStatus == FinePaid
}

// IsActive reports whether the copy is still out with the borrower.
func (b *BorrowRecord) IsActive() bool {
	return b.ReturnStatus == ReturnBorrowed
}

// UsageKey identifies this fine when a coupon is consumed for it.
func (b *BorrowRecord) UsageKey() string {
	return b.BorrowedBy + "_" + b.BookID
}
