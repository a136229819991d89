package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/services"
)

// imageCategories are the storage key prefixes written by the upload
// handlers. A viewing request for any other prefix is rejected.
var imageCategories = map[string]bool{
	"despachos":      true,
	"ordenes-compra": true,
	"conductores":    true,
	"reparaciones":   true,
}

// GetImageURL handles GET /api/v1/uploads/url?key=<storage key> - resolves
// a stored image key to a short-lived presigned URL for viewing.
func GetImageURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "key is required",
			},
		})
		return
	}

	// Keys always look like <category>/<timestamp>_<filename>
	if strings.Contains(key, "..") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_KEY",
				"message": "Invalid storage key",
			},
		})
		return
	}
	category, _, ok := strings.Cut(key, "/")
	if !ok || !imageCategories[category] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_KEY",
				"message": "Invalid storage key",
			},
		})
		return
	}

	url, err := services.GetImageService().GetImageURL(key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"message": "Image not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url": url,
		},
	})
}
