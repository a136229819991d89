package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

// ListNotifications handles GET /api/v1/notifications?status=pending
func ListNotifications(c *gin.Context) {
	db := config.GetDB()
	query := db.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load notifications",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
	})
}

// DispatchNotification handles POST /api/v1/notifications/:id/dispatch -
// turns a pending outbox row into its compose deep link and marks it
// dispatched. The caller opens the link; there is no delivery tracking
// beyond that.
func DispatchNotification(c *gin.Context) {
	db := config.GetDB()
	var notification models.Notification
	if err := db.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOTIFICATION_NOT_FOUND",
				"message": "Notification does not exist",
			},
		})
		return
	}

	link, err := services.DeepLink(&notification)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CHANNEL",
				"message": err.Error(),
			},
		})
		return
	}

	if err := services.MarkDispatched(db, &notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar notificación",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"link":         link,
			"notification": notification,
		},
	})
}
