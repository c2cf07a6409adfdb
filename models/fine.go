package models

import "time"

// FineView is a record with the amount a user sees for it right now.
type FineView struct {
	Record        BorrowRecord `json:"record"`
	DaysOverdue   int          `json:"daysOverdue"`
	Amount        float64      `json:"amount"`
	ReferenceDate time.Time    `json:"referenceDate"`
	Paid          bool         `json:"paid"`
}

// FineSummary aggregates fine views.
type FineSummary struct {
	Fines           []FineView `json:"fines"`
	TotalUnpaid     float64    `json:"totalUnpaid"`
	TotalPaid       float64    `json:"totalPaid"`
	RatePerDay      float64    `json:"ratePerDay"`
	OutstandingRecs int        `json:"outstandingRecords"`
}

// BatchPaymentResult is the outcome of one record in a batch payment.
type BatchPaymentResult struct {
	RecordID string  `json:"recordId"`
	Amount   float64 `json:"amount"`
	Error    string  `json:"error,omitempty"`
}
