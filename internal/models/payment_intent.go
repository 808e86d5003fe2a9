package models

import (
	"gorm.io/gorm"
)

type PaymentIntentStatus string

const (
	PaymentIntentInitialized PaymentIntentStatus = "initialized"
	PaymentIntentVerified    PaymentIntentStatus = "verified"
)

// PaymentIntent maps a gateway reference or session id back to the booking it
// was created for. It is written at initialize time and consulted at verify
// time, so verify never has to trust structure inside the opaque reference.
type PaymentIntent struct {
	gorm.Model
	BookingID uint                `json:"bookingId" gorm:"not null;index"`
	Reference string              `json:"reference" gorm:"unique;not null"`
	Gateway   string              `json:"gateway" gorm:"not null"`
	Amount    float64             `json:"amount" gorm:"not null"`
	Currency  string              `json:"currency" gorm:"not null;default:'NGN'"`
	Status    PaymentIntentStatus `json:"status" gorm:"not null;default:'initialized'"`
}

// TableName specifies the table name
func (PaymentIntent) TableName() string {
	return "payment_intents"
}
