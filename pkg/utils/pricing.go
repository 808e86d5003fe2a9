package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingQuote contains the calculated price and breakdown for a rental
type BookingQuote struct {
	Days            int     `json:"days"`
	TotalPrice      float64 `json:"totalPrice"`
	SecurityDeposit float64 `json:"securityDeposit"`
	AmountDue       float64 `json:"amountDue"`
}

const (
	// Security deposit as a fraction of one day's rate
	DepositRate = 0.5
	// Prefix embedded in every payment gateway reference
	ReferencePrefix = "nova"
)

// RentalDays returns the whole-day length of a rental. Same-day rentals count
// as one day.
func RentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// CalculateBookingQuote computes the price breakdown for a rental period.
func CalculateBookingQuote(start, end time.Time, pricePerDay float64) BookingQuote {
	days := RentalDays(start, end)
	totalPrice := float64(days) * pricePerDay
	deposit := math.Round(pricePerDay * DepositRate)

	return BookingQuote{
		Days:            days,
		TotalPrice:      totalPrice,
		SecurityDeposit: deposit,
		AmountDue:       totalPrice + deposit,
	}
}

// NewPaymentReference builds a gateway reference of the form
// nova_<bookingId>_<nonce>.
func NewPaymentReference(bookingID uint) string {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", ReferencePrefix, bookingID, nonce)
}

// BookingIDFromReference recovers the booking id segment from a payment
// reference. Used as a fallback when no payment intent row exists for the
// reference; booking ids never contain the separator.
func BookingIDFromReference(reference string) (string, error) {
	parts := strings.Split(reference, "_")
	if len(parts) < 3 || parts[0] != ReferencePrefix || parts[1] == "" {
		return "", fmt.Errorf("invalid payment reference %q", reference)
	}
	return parts[1], nil
}
