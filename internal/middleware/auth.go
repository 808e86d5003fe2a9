package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/novarides/nova-backend/internal/services"
	"github.com/novarides/nova-backend/pkg/utils"
	"gorm.io/gorm"
)

func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// First try to get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// If not found in header, try query parameter (for WebSocket)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"success": false, "error": "Authorization header or token query parameter required"})
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"success": false, "error": "Invalid token"})
			c.Abort()
			return
		}

		// Tokens revoked at logout stay refused until their natural expiry
		if services.IsTokenRevoked(c.Request.Context(), tokenString) {
			c.JSON(401, gin.H{"success": false, "error": "Token has been revoked"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"success": false, "error": "Invalid token claims"})
			c.Abort()
			return
		}

		id, ok := claims["id"].(float64)
		if !ok {
			c.JSON(401, gin.H{"success": false, "error": "Invalid token claims"})
			c.Abort()
			return
		}

		// A ban takes effect immediately, not at the token's next renewal
		var user models.User
		if err := db.First(&user, uint(id)).Error; err != nil {
			c.JSON(401, gin.H{"success": false, "error": "Account not found"})
			c.Abort()
			return
		}
		if user.Banned {
			reason := user.BannedReason
			if reason == "" {
				reason = "Rule violation"
			}
			c.JSON(403, gin.H{"success": false, "error": "Account banned: " + reason})
			c.Abort()
			return
		}

		c.Set("userId", user.ID)
		c.Set("userRole", user.Role)
		c.Set("token", tokenString)
		c.Next()
	}
}

// OptionalAuth populates the viewer identity when a valid token is presented
// but never rejects the request. Used on public catalog reads whose response
// shape depends on who is looking.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		token, err := utils.ValidateToken(parts[1])
		if err != nil || !token.Valid {
			c.Next()
			return
		}
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if id, ok := claims["id"].(float64); ok {
				c.Set("userId", uint(id))
			}
			if role, ok := claims["role"].(string); ok {
				c.Set("userRole", role)
			}
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user holds one of the
// given roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("userRole")
		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}
		c.JSON(403, gin.H{"success": false, "error": "Forbidden"})
		c.Abort()
	}
}
