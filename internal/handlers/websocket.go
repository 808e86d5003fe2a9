package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/services"
)

// WebSocketHandler upgrades an authenticated connection and registers it with
// the hub. Auth middleware runs first, so the identity keys are always set.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		role := c.GetString("userRole")

		services.HandleWebSocket(hub, c.Writer, c.Request, userId, role)
	}
}
