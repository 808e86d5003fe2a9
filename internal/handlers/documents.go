package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/novarides/nova-backend/internal/services"
	"gorm.io/gorm"
)

// UploadLicense stores the driver's licence documents and expiry date. Any
// new upload resets verification until an admin reviews it.
func UploadLicense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		expiryStr := c.PostForm("expiryDate")
		if expiryStr == "" {
			c.JSON(400, gin.H{"success": false, "error": "expiryDate required"})
			return
		}
		expiry, err := time.Parse("2006-01-02", expiryStr)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "expiryDate must be YYYY-MM-DD"})
			return
		}

		front, err := c.FormFile("front")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "front image required"})
			return
		}
		back, err := c.FormFile("back")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "back image required"})
			return
		}

		frontURL, err := services.UploadDocument(front, "documents/licenses")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to store licence front: " + err.Error()})
			return
		}
		backURL, err := services.UploadDocument(back, "documents/licenses")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to store licence back: " + err.Error()})
			return
		}

		user.LicenseDocFront = frontURL
		user.LicenseDocBack = backURL
		user.LicenseExpiryDate = &expiry
		user.LicenseVerified = false // pending review
		user.LicenseExpiryReminderSentAt = nil

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update licence"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}

// UploadAvatar stores a profile picture
func UploadAvatar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		file, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "avatar image required"})
			return
		}

		avatarURL, err := services.UploadDocument(file, "avatars")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to store avatar: " + err.Error()})
			return
		}

		user.Avatar = avatarURL
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update avatar"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}
