package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day counts as one", date(2026, 3, 10), date(2026, 3, 10), 1},
		{"end before start counts as one", date(2026, 3, 10), date(2026, 3, 9), 1},
		{"four days", date(2026, 3, 10), date(2026, 3, 14), 4},
		{"partial day rounds down", time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(tt.start, tt.end))
		})
	}
}

func TestCalculateBookingQuote(t *testing.T) {
	quote := CalculateBookingQuote(date(2026, 3, 10), date(2026, 3, 14), 15000)

	assert.Equal(t, 4, quote.Days)
	assert.Equal(t, 60000.0, quote.TotalPrice)
	assert.Equal(t, 7500.0, quote.SecurityDeposit)
	assert.Equal(t, 67500.0, quote.AmountDue)
}

func TestCalculateBookingQuote_DepositRounding(t *testing.T) {
	// 12345 * 0.5 = 6172.5, rounds to 6173
	quote := CalculateBookingQuote(date(2026, 3, 10), date(2026, 3, 11), 12345)

	assert.Equal(t, 1, quote.Days)
	assert.Equal(t, 6173.0, quote.SecurityDeposit)
	assert.Equal(t, 12345.0+6173.0, quote.AmountDue)
}

func TestPaymentReferenceRoundTrip(t *testing.T) {
	ref := NewPaymentReference(42)

	require.True(t, strings.HasPrefix(ref, "nova_42_"))

	id, err := BookingIDFromReference(ref)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestBookingIDFromReference(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{"well formed", "nova_abc123_def45678", "abc123", false},
		{"numeric id", "nova_7_deadbeef", "7", false},
		{"missing nonce", "nova_7", "", true},
		{"wrong prefix", "moove_7_deadbeef", "", true},
		{"empty id segment", "nova__deadbeef", "", true},
		{"empty string", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BookingIDFromReference(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
