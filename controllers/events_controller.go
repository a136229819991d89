package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/helpsoluciones/crm-api/middleware"
	"github.com/helpsoluciones/crm-api/services"
)

// StreamEvents handles GET /api/v1/events - long-lived SSE stream of
// table change events. The client reconnects on drop; there is no replay
// of missed events.
func StreamEvents(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	client := &services.RealtimeClient{
		ID:     uuid.NewString(),
		UserID: userID,
		Events: make(chan services.ChangeEvent, 16),
	}
	services.GlobalHub.Register(client)
	defer services.GlobalHub.Unregister(client.ID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return false
			}
			io.WriteString(w, services.FormatSSE(event))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
