package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/novarides/nova-backend/internal/payments"
	"github.com/novarides/nova-backend/internal/services"
	"github.com/novarides/nova-backend/pkg/utils"
	"gorm.io/gorm"
)

// GetPaymentConfig reports which payment gateways are configured
func GetPaymentConfig(cfg payments.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"paystack": cfg.Paystack,
				"stripe":   cfg.Stripe,
			},
		})
	}
}

// AuthorizePayment is the simulated payment path: no external call, the
// supplied amount is recorded as a completed transaction and the booking is
// marked paid. Kept as a test-mode fallback for deployments without gateway
// credentials.
func AuthorizePayment(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			BookingID uint     `json:"bookingId" binding:"required"`
			Amount    *float64 `json:"amount" binding:"required"`
			Currency  string   `json:"currency"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}
		if input.Currency == "" {
			input.Currency = "NGN"
		}

		var booking models.Booking
		if err := db.First(&booking, input.BookingID).Error; err != nil || booking.RenterID != userId {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}

		if booking.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(409, gin.H{"success": false, "error": "Booking already paid"})
			return
		}

		tx, err := settleBooking(db, hub, &booking, *input.Amount, input.Currency, "simulated", "")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to record payment"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": tx})
	}
}

// PaystackInitialize starts a Paystack transaction for a booking and returns
// the gateway's authorization URL. The reference is persisted as a payment
// intent so verify can resolve it without parsing.
func PaystackInitialize(db *gorm.DB, client payments.PaystackClient, cfg payments.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		if client == nil {
			c.JSON(503, gin.H{"success": false, "error": "Paystack is not configured"})
			return
		}

		var input struct {
			BookingID uint `json:"bookingId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, input.BookingID).Error; err != nil || booking.RenterID != userId {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(409, gin.H{"success": false, "error": "Booking already paid"})
			return
		}

		var renter models.User
		if err := db.First(&renter, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		amountNaira := booking.TotalPrice + booking.SecurityDeposit
		amountKobo := int64(math.Round(amountNaira * 100))
		reference := utils.NewPaymentReference(booking.ID)
		callbackURL := fmt.Sprintf("%s/bookings/%d/payment?gateway=paystack", cfg.AppURL, booking.ID)

		intent := models.PaymentIntent{
			BookingID: booking.ID,
			Reference: reference,
			Gateway:   "paystack",
			Amount:    amountNaira,
			Currency:  "NGN",
			Status:    models.PaymentIntentInitialized,
		}
		if err := db.Create(&intent).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create payment intent"})
			return
		}

		result, err := client.Initialize(payments.PaystackInitializeRequest{
			Email:       renter.Email,
			AmountKobo:  amountKobo,
			Reference:   reference,
			CallbackURL: callbackURL,
			Metadata: map[string]string{
				"bookingId": strconv.FormatUint(uint64(booking.ID), 10),
				"userId":    strconv.FormatUint(uint64(userId), 10),
			},
		})
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"authorizationUrl": result.AuthorizationURL,
				"reference":        result.Reference,
			},
		})
	}
}

// PaystackVerify is the gateway callback target. It confirms the transaction
// with Paystack, resolves the booking behind the reference and settles it.
// A booking that is already paid settles nothing: verify is idempotent.
func PaystackVerify(db *gorm.DB, client payments.PaystackClient, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.JSON(503, gin.H{"success": false, "error": "Paystack is not configured"})
			return
		}

		reference := c.Query("reference")
		if reference == "" {
			c.JSON(400, gin.H{"success": false, "error": "reference required"})
			return
		}

		result, err := client.Verify(reference)
		if err != nil || !result.Success {
			c.JSON(400, gin.H{"success": false, "error": "Payment verification failed"})
			return
		}

		booking, err := resolveBookingByReference(db, reference)
		if err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}

		if booking.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(200, gin.H{"success": true, "data": gin.H{"bookingId": booking.ID, "paid": true, "alreadyPaid": true}})
			return
		}

		amount := float64(result.AmountKobo) / 100
		if _, err := settleBooking(db, hub, booking, amount, "NGN", "paystack", reference); err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to record payment"})
			return
		}

		db.Model(&models.PaymentIntent{}).
			Where("reference = ?", reference).
			Update("status", models.PaymentIntentVerified)

		c.JSON(200, gin.H{"success": true, "data": gin.H{"bookingId": booking.ID, "paid": true}})
	}
}

// StripeCreateSession opens a Stripe checkout session for a booking, pricing
// it in USD cents via the configured exchange rate.
func StripeCreateSession(db *gorm.DB, client payments.StripeClient, cfg payments.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		if client == nil {
			c.JSON(503, gin.H{"success": false, "error": "Stripe is not configured"})
			return
		}

		var input struct {
			BookingID uint `json:"bookingId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.Preload("Vehicle").First(&booking, input.BookingID).Error; err != nil || booking.RenterID != userId {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(409, gin.H{"success": false, "error": "Booking already paid"})
			return
		}

		var renter models.User
		if err := db.First(&renter, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		amountNaira := booking.TotalPrice + booking.SecurityDeposit
		amountCents := int64(math.Round(amountNaira * cfg.NgnToUsdRate * 100))
		if amountCents < 50 {
			amountCents = 50 // Stripe's minimum charge
		}

		description := "Car rental"
		if booking.Vehicle != nil && booking.Vehicle.Title != "" {
			description = booking.Vehicle.Title
		}

		bookingRef := strconv.FormatUint(uint64(booking.ID), 10)
		successURL := fmt.Sprintf("%s/bookings/%d/payment?gateway=stripe&session_id={CHECKOUT_SESSION_ID}", cfg.AppURL, booking.ID)
		cancelURL := fmt.Sprintf("%s/bookings/%d", cfg.AppURL, booking.ID)

		session, err := client.CreateCheckoutSession(payments.StripeCheckoutParams{
			AmountCents:   amountCents,
			Currency:      "usd",
			SuccessURL:    successURL,
			CancelURL:     cancelURL,
			BookingID:     bookingRef,
			Description:   description,
			CustomerEmail: renter.Email,
		})
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		intent := models.PaymentIntent{
			BookingID: booking.ID,
			Reference: session.ID,
			Gateway:   "stripe",
			Amount:    amountNaira,
			Currency:  "NGN",
			Status:    models.PaymentIntentInitialized,
		}
		if err := db.Create(&intent).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create payment intent"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"url":       session.URL,
				"sessionId": session.ID,
			},
		})
	}
}

// StripeVerify confirms a checkout session and settles the booking. The
// ledger records the booking's stored NGN total, not Stripe's USD figure.
func StripeVerify(db *gorm.DB, client payments.StripeClient, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.JSON(503, gin.H{"success": false, "error": "Stripe is not configured"})
			return
		}

		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(400, gin.H{"success": false, "error": "session_id required"})
			return
		}

		session, err := client.RetrieveSession(sessionID)
		if err != nil || session.PaymentStatus != "paid" || session.BookingID == "" {
			c.JSON(400, gin.H{"success": false, "error": "Payment verification failed"})
			return
		}

		var booking models.Booking
		// Prefer the intent persisted at session creation; the session's own
		// booking reference covers sessions created before intents existed.
		var intent models.PaymentIntent
		if err := db.Where("reference = ?", sessionID).First(&intent).Error; err == nil {
			err = db.First(&booking, intent.BookingID).Error
			if err != nil {
				c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
				return
			}
		} else {
			bookingID, convErr := strconv.ParseUint(session.BookingID, 10, 32)
			if convErr != nil {
				c.JSON(400, gin.H{"success": false, "error": "Invalid session booking reference"})
				return
			}
			if err := db.First(&booking, uint(bookingID)).Error; err != nil {
				c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
				return
			}
		}

		if booking.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(200, gin.H{"success": true, "data": gin.H{"bookingId": booking.ID, "paid": true, "alreadyPaid": true}})
			return
		}

		amount := booking.TotalPrice + booking.SecurityDeposit
		if _, err := settleBooking(db, hub, &booking, amount, "NGN", "stripe", sessionID); err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to record payment"})
			return
		}

		db.Model(&models.PaymentIntent{}).
			Where("reference = ?", sessionID).
			Update("status", models.PaymentIntentVerified)

		c.JSON(200, gin.H{"success": true, "data": gin.H{"bookingId": booking.ID, "paid": true}})
	}
}

// resolveBookingByReference looks a booking up through its payment intent,
// falling back to the booking id embedded in the reference string.
func resolveBookingByReference(db *gorm.DB, reference string) (*models.Booking, error) {
	var booking models.Booking

	var intent models.PaymentIntent
	if err := db.Where("reference = ?", reference).First(&intent).Error; err == nil {
		if err := db.First(&booking, intent.BookingID).Error; err != nil {
			return nil, err
		}
		return &booking, nil
	}

	idSegment, err := utils.BookingIDFromReference(reference)
	if err != nil {
		return nil, err
	}
	bookingID, err := strconv.ParseUint(idSegment, 10, 32)
	if err != nil {
		return nil, errors.New("reference does not carry a booking id")
	}
	if err := db.First(&booking, uint(bookingID)).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// settleBooking marks the booking paid and appends the ledger row in one
// transaction, then notifies the renter.
func settleBooking(db *gorm.DB, hub *services.Hub, booking *models.Booking, amount float64, currency, gateway, reference string) (*models.Transaction, error) {
	ledgerTx := models.Transaction{
		UserID:    booking.RenterID,
		BookingID: booking.ID,
		Type:      "payment",
		Amount:    amount,
		Currency:  currency,
		Status:    models.TransactionStatusCompleted,
		Gateway:   gateway,
		Reference: reference,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ledgerTx).Error; err != nil {
			return err
		}
		booking.PaymentStatus = models.PaymentStatusPaid
		return tx.Save(booking).Error
	})
	if err != nil {
		return nil, err
	}

	if hub != nil {
		hub.SendPaymentEvent(booking.RenterID, services.PaymentEvent{
			BookingID: booking.ID,
			Amount:    amount,
			Currency:  currency,
			Gateway:   gateway,
		})
	}

	var renter models.User
	if err := db.First(&renter, booking.RenterID).Error; err == nil {
		if err := utils.SendPaymentReceivedEmail(renter.Email, amount, currency, booking.ID); err != nil {
			log.Printf("Failed to send payment email: %v", err)
		}
	}

	return &ledgerTx, nil
}
