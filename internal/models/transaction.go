package models

import (
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry. Rows are created when a payment
// is authorized or verified and never mutated afterwards.
type Transaction struct {
	gorm.Model
	UserID    uint              `json:"userId" gorm:"not null;index"`
	BookingID uint              `json:"bookingId" gorm:"not null;index"`
	Type      string            `json:"type" gorm:"not null;default:'payment'"`
	Amount    float64           `json:"amount" gorm:"not null"`
	Currency  string            `json:"currency" gorm:"not null;default:'NGN'"`
	Status    TransactionStatus `json:"status" gorm:"not null"`
	Gateway   string            `json:"gateway,omitempty"`
	Reference string            `json:"reference,omitempty"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}
