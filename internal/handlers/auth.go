package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/novarides/nova-backend/internal/services"
	"github.com/novarides/nova-backend/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required,oneof=host renter"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(409, gin.H{"success": false, "error": "Email already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(500, gin.H{"success": false, "error": "Failed to check existing users"})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to hash password"})
			return
		}

		user := models.User{
			Email:        input.Email,
			PasswordHash: string(hashedPassword),
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Phone:        input.Phone,
			Role:         input.Role,
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create user: " + result.Error.Error()})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		c.JSON(201, gin.H{
			"success": true,
			"data": gin.H{
				"token": token,
				"user":  user,
			},
		})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}

		if user.Banned {
			reason := user.BannedReason
			if reason == "" {
				reason = "Rule violation"
			}
			c.JSON(403, gin.H{"success": false, "error": "Account banned: " + reason})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"token": token,
				"user":  user,
			},
		})
	}
}

// Logout denylists the presented token for the remainder of its lifetime.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetString("token")

		ttl := time.Hour * 24 * 7
		if token, err := utils.ValidateToken(tokenString); err == nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if exp, ok := claims["exp"].(float64); ok {
					ttl = time.Until(time.Unix(int64(exp), 0))
				}
			}
		}

		if err := services.RevokeToken(c.Request.Context(), tokenString, ttl); err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to revoke session"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"loggedOut": true}})
	}
}
