package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/novarides/nova-backend/internal/services"
	"github.com/novarides/nova-backend/pkg/utils"
	"gorm.io/gorm"
)

const (
	licenseMissingMsg = "Please upload and verify your driver's licence (front, back, and expiry date) in Profile before booking."
	licenseExpiredMsg = "Your driver's licence has expired. Upload a new one in Profile to book again."
)

// CreateBooking handles the creation of a new booking
func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			VehicleID uint   `json:"vehicleId" binding:"required"`
			StartDate string `json:"startDate" binding:"required"`
			EndDate   string `json:"endDate" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var renter models.User
		if err := db.First(&renter, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		now := time.Now()
		if !renter.CanBook(now) {
			msg := licenseMissingMsg
			if renter.LicenseExpired(now) {
				msg = licenseExpiredMsg
			}
			c.JSON(403, gin.H{"success": false, "error": msg})
			return
		}

		var vehicle models.Vehicle
		if err := db.Where("status = ?", models.VehicleStatusActive).First(&vehicle, input.VehicleID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Vehicle not found"})
			return
		}

		if vehicle.HostID == userId {
			c.JSON(400, gin.H{"success": false, "error": "Cannot book your own vehicle"})
			return
		}

		start, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "startDate must be YYYY-MM-DD"})
			return
		}
		end, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "endDate must be YYYY-MM-DD"})
			return
		}

		quote := utils.CalculateBookingQuote(start, end, vehicle.PricePerDay)
		if quote.Days < vehicle.MinRentalDays {
			c.JSON(400, gin.H{"success": false, "error": fmt.Sprintf("Minimum rental is %d days", vehicle.MinRentalDays)})
			return
		}

		status := models.BookingStatusPending
		if vehicle.BookingType == models.BookingTypeInstant {
			status = models.BookingStatusConfirmed
		}

		booking := models.Booking{
			VehicleID:       vehicle.ID,
			RenterID:        userId,
			HostID:          vehicle.HostID,
			StartDate:       start,
			EndDate:         end,
			TotalPrice:      quote.TotalPrice,
			SecurityDeposit: quote.SecurityDeposit,
			Status:          status,
			PaymentStatus:   models.PaymentStatusPending,
			BookingType:     vehicle.BookingType,
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create booking"})
			return
		}

		if hub != nil {
			hub.SendBookingEvent(vehicle.HostID, "booking_requested", services.BookingEvent{
				BookingID: booking.ID,
				VehicleID: vehicle.ID,
				Status:    string(booking.Status),
				Message:   "New booking request for " + vehicle.Title,
			})
		}

		var host models.User
		if err := db.First(&host, vehicle.HostID).Error; err == nil {
			if err := utils.SendBookingRequestEmail(host.Email, vehicle.Title, renter.FirstName+" "+renter.LastName); err != nil {
				log.Printf("Failed to send booking request email: %v", err)
			}
		}

		c.JSON(201, gin.H{"success": true, "data": booking})
	}
}

// GetBookings lists the caller's bookings. The "as" query selects the renter
// or host view; the host view carries a renter summary per booking.
func GetBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		as := c.Query("as")

		query := db.Preload("Vehicle")
		switch as {
		case "host":
			query = query.Where("host_id = ?", userId)
		case "renter":
			query = query.Where("renter_id = ?", userId)
		default:
			query = query.Where("renter_id = ? OR host_id = ?", userId, userId)
		}

		var bookings []models.Booking
		if err := query.Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch bookings"})
			return
		}

		if as != "host" {
			c.JSON(200, gin.H{"success": true, "data": bookings})
			return
		}

		enriched := make([]gin.H, 0, len(bookings))
		for _, b := range bookings {
			var hasReviewed int64
			db.Model(&models.Review{}).
				Where("booking_id = ? AND reviewer_id = ?", b.ID, b.HostID).
				Count(&hasReviewed)

			item := gin.H{
				"booking":              b,
				"renterSummary":        userSummary(db, b.RenterID),
				"hasHostReviewedGuest": hasReviewed > 0,
			}
			if b.Vehicle != nil {
				item["vehicleTitle"] = b.Vehicle.Title
			}
			enriched = append(enriched, item)
		}

		c.JSON(200, gin.H{"success": true, "data": enriched})
	}
}

// GetBooking retrieves one booking with the counterparty's rating summary
// attached. Read-side join only; nothing is written.
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.Preload("Vehicle").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}

		if booking.RenterID != userId && booking.HostID != userId {
			c.JSON(403, gin.H{"success": false, "error": "Forbidden"})
			return
		}

		// Host sees the renter's track record; renter sees the host's.
		counterparty := booking.RenterID
		if userId == booking.RenterID {
			counterparty = booking.HostID
		}

		var reviews []models.Review
		db.Where("reviewee_id = ?", counterparty).Find(&reviews)

		var hasReviewed int64
		db.Model(&models.Review{}).
			Where("booking_id = ? AND reviewer_id = ?", booking.ID, userId).
			Count(&hasReviewed)

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"booking":             booking,
				"counterpartySummary": userSummary(db, counterparty),
				"counterpartyReviews": reviews,
				"hasReviewed":         hasReviewed > 0,
			},
		})
	}
}

// UpdateBookingStatus moves a booking through its lifecycle. Only explicit
// status commands are accepted; no other booking field can be written here.
func UpdateBookingStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			Status string `json:"status" binding:"required,oneof=confirmed rejected cancelled in_progress completed"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.Preload("Vehicle").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}

		if booking.RenterID != userId && booking.HostID != userId {
			c.JSON(403, gin.H{"success": false, "error": "Forbidden"})
			return
		}

		target := models.BookingStatus(input.Status)
		if models.HostOnlyTransition(target) && booking.HostID != userId {
			c.JSON(403, gin.H{"success": false, "error": "Only the host can perform this action"})
			return
		}

		if !models.CanTransition(booking.Status, target) {
			c.JSON(400, gin.H{"success": false, "error": fmt.Sprintf("Cannot move booking from %s to %s", booking.Status, target)})
			return
		}

		booking.Status = target
		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update booking status"})
			return
		}

		notifyBookingStatus(db, hub, &booking, userId)

		c.JSON(200, gin.H{"success": true, "data": booking})
	}
}

func notifyBookingStatus(db *gorm.DB, hub *services.Hub, booking *models.Booking, actorID uint) {
	// The party who did not act gets the event
	recipient := booking.RenterID
	if actorID == booking.RenterID {
		recipient = booking.HostID
	}

	if hub != nil {
		hub.SendBookingEvent(recipient, "booking_status", services.BookingEvent{
			BookingID: booking.ID,
			VehicleID: booking.VehicleID,
			Status:    string(booking.Status),
		})
	}

	title := ""
	if booking.Vehicle != nil {
		title = booking.Vehicle.Title
	}

	var renter models.User
	if err := db.First(&renter, booking.RenterID).Error; err != nil {
		return
	}

	var err error
	switch booking.Status {
	case models.BookingStatusConfirmed:
		err = utils.SendBookingConfirmedEmail(renter.Email, title, booking.ID)
	case models.BookingStatusRejected:
		err = utils.SendBookingRejectedEmail(renter.Email, title)
	}
	if err != nil {
		log.Printf("Failed to send booking status email: %v", err)
	}
}

// userSummary builds the compact rating card shown next to a booking.
func userSummary(db *gorm.DB, userID uint) gin.H {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil
	}

	var reviews []models.Review
	db.Where("reviewee_id = ?", userID).Find(&reviews)

	return gin.H{
		"id":          user.ID,
		"firstName":   user.FirstName,
		"lastName":    user.LastName,
		"rating":      models.AggregateRating(reviews),
		"reviewCount": len(reviews),
	}
}
