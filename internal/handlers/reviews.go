package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"gorm.io/gorm"
)

// GetReviews lists reviews, optionally filtered by the reviewed user or by
// the vehicle the underlying bookings were for.
func GetReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Review{}).Order("created_at DESC")

		if userID := c.Query("userId"); userID != "" {
			id, err := strconv.ParseUint(userID, 10, 32)
			if err != nil {
				c.JSON(400, gin.H{"success": false, "error": "Invalid userId"})
				return
			}
			query = query.Where("reviewee_id = ?", uint(id))
		}

		if vehicleID := c.Query("vehicleId"); vehicleID != "" {
			id, err := strconv.ParseUint(vehicleID, 10, 32)
			if err != nil {
				c.JSON(400, gin.H{"success": false, "error": "Invalid vehicleId"})
				return
			}
			query = query.
				Joins("JOIN bookings ON bookings.id = reviews.booking_id").
				Where("bookings.vehicle_id = ?", uint(id))
		}

		var reviews []models.Review
		if err := query.Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch reviews"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"reviews": reviews,
				"rating":  models.AggregateRating(reviews),
				"count":   len(reviews),
			},
		})
	}
}

// CreateReview records a rating of the other party on a completed booking.
// Each party gets one review per booking; ratings outside 1..5 are clamped.
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			BookingID uint     `json:"bookingId" binding:"required"`
			Rating    *float64 `json:"rating" binding:"required"`
			Comment   string   `json:"comment"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, input.BookingID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}

		if booking.RenterID != userId && booking.HostID != userId {
			c.JSON(403, gin.H{"success": false, "error": "You are not a party to this booking"})
			return
		}

		if booking.Status != models.BookingStatusCompleted {
			c.JSON(400, gin.H{"success": false, "error": "Reviews are only allowed on completed bookings"})
			return
		}

		var existing int64
		db.Model(&models.Review{}).
			Where("booking_id = ? AND reviewer_id = ?", booking.ID, userId).
			Count(&existing)
		if existing > 0 {
			c.JSON(409, gin.H{"success": false, "error": "You have already reviewed this booking"})
			return
		}

		revieweeID := booking.HostID
		if userId == booking.HostID {
			revieweeID = booking.RenterID
		}

		review := models.Review{
			BookingID:  booking.ID,
			ReviewerID: userId,
			RevieweeID: revieweeID,
			Rating:     models.ClampRating(*input.Rating),
			Comment:    input.Comment,
		}

		if err := db.Create(&review).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create review"})
			return
		}

		c.JSON(201, gin.H{"success": true, "data": review})
	}
}
