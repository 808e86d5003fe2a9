package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises a full rental: listing, booking request, host confirmation,
// payment, handover, return, and mutual reviews.
func TestFullRentalFlow(t *testing.T) {
	db := newTestDB(t)
	host := seedUser(t, db, "host@example.com", "host", false)
	renter := seedUser(t, db, "renter@example.com", "renter", true)

	as := func(u models.User, role string) *gin.Engine {
		r := gin.New()
		r.Use(withIdentity(u.ID, role))
		r.POST("/vehicles", CreateVehicle(db))
		r.POST("/bookings", CreateBooking(db, nil))
		r.PATCH("/bookings/:id/status", UpdateBookingStatus(db, nil))
		r.POST("/payments/authorize", AuthorizePayment(db, nil))
		r.POST("/reviews", CreateReview(db))
		return r
	}
	hostAPI := as(host, "host")
	renterAPI := as(renter, "renter")

	// Host lists a car
	w := jsonRequest(t, hostAPI, "POST", "/vehicles", gin.H{
		"title":       "Toyota Corolla 2021",
		"pricePerDay": 15000,
		"city":        "Lagos",
		"bookingType": "approval",
	})
	require.Equal(t, 201, w.Code)

	var vehicle models.Vehicle
	require.NoError(t, db.Where("host_id = ?", host.ID).First(&vehicle).Error)

	// Renter requests four days
	w = jsonRequest(t, renterAPI, "POST", "/bookings", gin.H{
		"vehicleId": vehicle.ID,
		"startDate": "2026-04-10",
		"endDate":   "2026-04-14",
	})
	require.Equal(t, 201, w.Code)

	var booking models.Booking
	require.NoError(t, db.Where("vehicle_id = ?", vehicle.ID).First(&booking).Error)
	require.Equal(t, models.BookingStatusPending, booking.Status)
	require.Equal(t, 60000.0, booking.TotalPrice)
	require.Equal(t, 7500.0, booking.SecurityDeposit)

	// Host confirms
	w = jsonRequest(t, hostAPI, "PATCH", bookingPath(booking.ID), gin.H{"status": "confirmed"})
	require.Equal(t, 200, w.Code)

	// Renter pays total plus deposit
	w = jsonRequest(t, renterAPI, "POST", "/payments/authorize", gin.H{
		"bookingId": booking.ID,
		"amount":    67500,
	})
	require.Equal(t, 200, w.Code)

	// Key handover, then return
	w = jsonRequest(t, hostAPI, "PATCH", bookingPath(booking.ID), gin.H{"status": "in_progress"})
	require.Equal(t, 200, w.Code)
	w = jsonRequest(t, hostAPI, "PATCH", bookingPath(booking.ID), gin.H{"status": "completed"})
	require.Equal(t, 200, w.Code)

	// Both parties review each other
	w = jsonRequest(t, renterAPI, "POST", "/reviews", gin.H{"bookingId": booking.ID, "rating": 5, "comment": "Smooth handover"})
	require.Equal(t, 201, w.Code)
	w = jsonRequest(t, hostAPI, "POST", "/reviews", gin.H{"bookingId": booking.ID, "rating": 4, "comment": "Returned on time"})
	require.Equal(t, 201, w.Code)

	var final models.Booking
	require.NoError(t, db.First(&final, booking.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, final.Status)
	assert.Equal(t, models.PaymentStatusPaid, final.PaymentStatus)

	var reviewCount int64
	db.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&reviewCount)
	assert.Equal(t, int64(2), reviewCount)

	var ledger []models.Transaction
	require.NoError(t, db.Where("booking_id = ?", booking.ID).Find(&ledger).Error)
	require.Len(t, ledger, 1)
	assert.Equal(t, 67500.0, ledger[0].Amount)
}

// Resolving a verify callback must work even when intents and reference
// parsing disagree about which lookup to use first.
func TestResolveBookingByReference(t *testing.T) {
	db := newTestDB(t)
	host := seedUser(t, db, "host@example.com", "host", false)
	renter := seedUser(t, db, "renter@example.com", "renter", true)
	vehicle := seedVehicle(t, db, host.ID, models.BookingTypeApproval, 1)
	booking := seedBooking(t, db, vehicle, renter.ID, models.BookingStatusConfirmed)

	t.Run("intent wins", func(t *testing.T) {
		require.NoError(t, db.Create(&models.PaymentIntent{
			BookingID: booking.ID,
			Reference: "nova_999_deadbeef", // embedded id is wrong on purpose
			Gateway:   "paystack",
			Amount:    67500,
			Currency:  "NGN",
			Status:    models.PaymentIntentInitialized,
		}).Error)

		got, err := resolveBookingByReference(db, "nova_999_deadbeef")
		require.NoError(t, err)
		assert.Equal(t, booking.ID, got.ID)
	})

	t.Run("falls back to parsing", func(t *testing.T) {
		got, err := resolveBookingByReference(db, "nova_"+itoa(booking.ID)+"_cafef00d")
		require.NoError(t, err)
		assert.Equal(t, booking.ID, got.ID)
	})

	t.Run("garbage reference fails", func(t *testing.T) {
		_, err := resolveBookingByReference(db, "not-a-reference")
		require.Error(t, err)
	})
}
