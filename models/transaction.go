package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// LedgerTransaction is a budget entry reported to accounting.
type LedgerTransaction struct {
	ID           string          `bson:"id" json:"id"`
	Type         TransactionType `bson:"type" json:"type"`
	Category     string          `bson:"category" json:"category"`
	Amount       float64         `bson:"amount" json:"amount"`
	Description  string          `bson:"description" json:"description"`
	ReferenceKey string          `bson:"referenceKey" json:"referenceKey"`
	UserID       string          `bson:"userId,omitempty" json:"userId,omitempty"`
	Date         time.Time       `bson:"date" json:"date"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt"`
}
