package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

// ListClients handles GET /api/v1/clients
func ListClients(c *gin.Context) {
	db := config.GetDB()
	var clients []models.Client
	if err := db.Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load clients",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    clients,
	})
}

// CreateClient handles POST /api/v1/clients - creates a new client.
// The id is always server-assigned; any id in the payload is discarded.
func CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid client data",
				"details": err.Error(),
			},
		})
		return
	}
	client.ID = ""

	db := config.GetDB()
	if err := db.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al añadir cliente",
			},
		})
		return
	}

	services.PublishChange("clientes", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    client,
	})
}

// UpdateClient handles PUT /api/v1/clients/:id - full-record replace
func UpdateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid client data",
				"details": err.Error(),
			},
		})
		return
	}
	client.ID = c.Param("id")

	db := config.GetDB()
	if err := db.Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar cliente",
			},
		})
		return
	}

	services.PublishChange("clientes", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    client,
	})
}

// DeleteClient handles DELETE /api/v1/clients/:id - deletes by id with
// no cascade: quotes referencing the client keep their dangling ids and
// resolve to placeholder strings from then on.
func DeleteClient(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.Client{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar cliente",
			},
		})
		return
	}

	services.PublishChange("clientes", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
