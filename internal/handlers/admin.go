package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"gorm.io/gorm"
)

// ListUsers returns all accounts for the admin console, optionally filtered
// by role or ban state.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.User{}).Order("created_at DESC")

		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}
		if banned := c.Query("banned"); banned != "" {
			query = query.Where("banned = ?", banned == "true")
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch users"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": users})
	}
}

// VerifyLicense marks a user's uploaded driver's license as reviewed and
// approved. The expiry date on file still gates bookings after approval.
func VerifyLicense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "Invalid user id"})
			return
		}

		var user models.User
		if err := db.First(&user, uint(targetID)).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		if user.LicenseDocFront == "" || user.LicenseDocBack == "" {
			c.JSON(400, gin.H{"success": false, "error": "User has no license documents on file"})
			return
		}

		user.LicenseVerified = true
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to verify license"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}

// ApproveVehicle moves a pending listing into the public catalog.
func ApproveVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "Invalid vehicle id"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, uint(vehicleID)).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Vehicle not found"})
			return
		}

		vehicle.Status = models.VehicleStatusActive
		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to approve vehicle"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": vehicle})
	}
}

// BanUser locks an account out of the platform. Admin accounts cannot be
// banned.
func BanUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetUint("userId")

		targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "Invalid user id"})
			return
		}

		var input struct {
			Reason string `json:"reason"`
		}
		// Body is optional; a missing reason falls back to the default.
		_ = c.ShouldBindJSON(&input)
		if input.Reason == "" {
			input.Reason = "Rule violation"
		}

		var user models.User
		if err := db.First(&user, uint(targetID)).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		if user.Role == string(models.RoleAdmin) {
			c.JSON(400, gin.H{"success": false, "error": "Cannot ban an admin"})
			return
		}

		now := time.Now()
		user.Banned = true
		user.BannedAt = &now
		user.BannedReason = input.Reason
		user.BannedBy = adminID

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to ban user"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}

// UnbanUser restores a banned account.
func UnbanUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "Invalid user id"})
			return
		}

		var user models.User
		if err := db.First(&user, uint(targetID)).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		user.Banned = false
		user.BannedAt = nil
		user.BannedReason = ""
		user.BannedBy = 0

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to unban user"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}
