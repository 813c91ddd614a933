package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kowshikmeda/KabaddiBackend/internal/websocket"
)

// WebSocketHandler upgrades authenticated viewers onto the realtime hub.
type WebSocketHandler struct {
	hub *websocket.Hub
}

func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// HandleWebSocket upgrades the connection; room membership is driven by
// joinMatch/leaveMatch messages after the upgrade.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	websocket.ServeWs(h.hub, c.Writer, c.Request, userID.(string))
}
