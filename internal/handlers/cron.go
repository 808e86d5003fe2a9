package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/novarides/nova-backend/pkg/utils"
	"gorm.io/gorm"
)

const licenseReminderWindow = 30 * 24 * time.Hour

// CheckLicenseExpiry emails users whose verified licence expires within the
// next 30 days. Each user is reminded at most once per expiry window; the
// sweep is meant to be hit by an external scheduler.
func CheckLicenseExpiry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		windowEnd := now.Add(licenseReminderWindow)

		var users []models.User
		if err := db.Where(
			"license_verified = ? AND license_expiry_date IS NOT NULL AND license_expiry_date > ? AND license_expiry_date <= ?",
			true, now, windowEnd,
		).Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch users"})
			return
		}

		reminded := 0
		for i := range users {
			user := &users[i]

			// Already reminded inside this expiry window.
			if user.LicenseExpiryReminderSentAt != nil &&
				user.LicenseExpiryReminderSentAt.After(user.LicenseExpiryDate.Add(-licenseReminderWindow)) {
				continue
			}

			daysLeft := int(user.LicenseExpiryDate.Sub(now).Hours() / 24)
			if err := utils.SendLicenseExpiryReminderEmail(user.Email, daysLeft); err != nil {
				log.Printf("Failed to send licence expiry reminder to %s: %v", user.Email, err)
				continue
			}

			sentAt := now
			user.LicenseExpiryReminderSentAt = &sentAt
			if err := db.Model(user).Update("license_expiry_reminder_sent_at", sentAt).Error; err != nil {
				log.Printf("Failed to stamp reminder for %s: %v", user.Email, err)
				continue
			}
			reminded++
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"checked":  len(users),
				"reminded": reminded,
			},
		})
	}
}
