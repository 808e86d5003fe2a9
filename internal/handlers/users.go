package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"gorm.io/gorm"
)

// GetProfile retrieves the user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}

// UpdateProfile updates the user's profile information
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			FirstName *string `json:"firstName"`
			LastName  *string `json:"lastName"`
			Phone     *string `json:"phone"`
			Avatar    *string `json:"avatar"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		// Update fields individually to handle empty strings properly
		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Avatar != nil {
			user.Avatar = *input.Avatar
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}

// UpdateRole switches the user between the renter and host roles. Admins are
// never created this way.
func UpdateRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Role string `json:"role" binding:"required,oneof=host renter"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		if user.Role == string(models.RoleAdmin) {
			c.JSON(400, gin.H{"success": false, "error": "Admins cannot change role"})
			return
		}

		user.Role = input.Role
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update role"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}
