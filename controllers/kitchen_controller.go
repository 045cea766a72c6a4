package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marco-valdez/la-comanda-api/services"
)

// KitchenFeed handles GET /api/v1/ws/kitchen - upgrades to a websocket and
// streams order status events to the kitchen screen
func KitchenFeed(c *gin.Context) {
	hub := services.GetKitchenHub()
	if hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FEED_UNAVAILABLE",
				"message": "Kitchen feed is not running",
			},
		})
		return
	}

	if err := hub.Subscribe(c.Writer, c.Request); err != nil {
		// Upgrade failures write their own HTTP response.
		c.Abort()
	}
}
