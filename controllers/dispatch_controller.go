package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/middleware"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
	"github.com/helpsoluciones/crm-api/utils"
)

// slaIndicator is the aging grade attached to dispatch and purchase
// order list rows. Days counts from the request date; rows whose estado
// marks them finished report completed regardless of age.
type slaIndicator struct {
	Days  int    `json:"days"`
	Color string `json:"color"`
}

type dispatchWithSLA struct {
	models.Dispatch
	SLA slaIndicator `json:"sla"`
}

// computeSLA grades a logistics row by age: up to 2 days green, 3 days
// yellow, older red. Delivered dispatches and warehoused orders count
// as completed.
func computeSLA(fecha, estado string, now time.Time) slaIndicator {
	if estado == models.DispatchStatusDelivered || estado == models.POStatusWarehoused {
		return slaIndicator{Days: 0, Color: "completed"}
	}

	days := 0
	if requested, err := time.Parse("2006-01-02", fecha); err == nil {
		days = int(now.Sub(requested).Hours() / 24)
		if days < 0 {
			days = 0
		}
	}

	color := "green"
	switch {
	case days > 3:
		color = "red"
	case days == 3:
		color = "yellow"
	}
	return slaIndicator{Days: days, Color: color}
}

// ListDispatches handles GET /api/v1/dispatches - Admin and Logistica see
// every dispatch, everyone else only their own. Each row carries its SLA
// indicator.
func ListDispatches(c *gin.Context) {
	claims, err := middleware.GetClaims(c)
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

	db := config.GetDB()
	query := db.Order("created_at DESC")
	if claims.Rol != models.RoleAdmin && claims.Rol != models.RoleLogistics {
		query = query.Where("usuario_id = ?", claims.Subject)
	}

	var dispatches []models.Dispatch
	if err := query.Find(&dispatches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load dispatches",
			},
		})
		return
	}

	now := time.Now()
	result := make([]dispatchWithSLA, 0, len(dispatches))
	for i := range dispatches {
		result = append(result, dispatchWithSLA{
			Dispatch: dispatches[i],
			SLA:      computeSLA(dispatches[i].FechaSolicitud, dispatches[i].Estado, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// UpdateDispatch handles PUT /api/v1/dispatches/:id - full-record replace.
// A state change queues one email to the owning executive naming the old
// and new states.
func UpdateDispatch(c *gin.Context) {
	var dispatch models.Dispatch
	if err := c.ShouldBindJSON(&dispatch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid dispatch data",
				"details": err.Error(),
			},
		})
		return
	}
	dispatch.ID = c.Param("id")

	db := config.GetDB()
	var existing models.Dispatch
	if err := db.First(&existing, "id = ?", dispatch.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISPATCH_NOT_FOUND",
				"message": "Dispatch does not exist",
			},
		})
		return
	}

	if err := db.Save(&dispatch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar despacho",
			},
		})
		return
	}
	services.PublishChange("despachos", "update")

	if existing.Estado != dispatch.Estado && dispatch.EjecutivoEmail != "" {
		services.EnqueueEmail(db,
			dispatch.EjecutivoEmail,
			fmt.Sprintf("Cambio de Estado Pedido: %s", dispatch.ConsecutivoCotizacion),
			fmt.Sprintf("Hola, el estado de tu pedido %s ha cambiado de \"%s\" a \"%s\".", dispatch.ConsecutivoCotizacion, existing.Estado, dispatch.Estado),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dispatch,
	})
}

// DeleteDispatch handles DELETE /api/v1/dispatches/:id
func DeleteDispatch(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.Dispatch{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar despacho",
			},
		})
		return
	}

	services.PublishChange("despachos", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// CompleteDispatch handles POST /api/v1/dispatches/:id/complete - marks
// the dispatch delivered and queues the WhatsApp confirmations for
// logistics and the owning executive.
func CompleteDispatch(c *gin.Context) {
	db := config.GetDB()
	var dispatch models.Dispatch
	if err := db.First(&dispatch, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISPATCH_NOT_FOUND",
				"message": "Dispatch does not exist",
			},
		})
		return
	}

	dispatch.Estado = models.DispatchStatusDelivered
	if err := db.Save(&dispatch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar despacho",
			},
		})
		return
	}
	services.PublishChange("despachos", "update")

	cfg := config.GetConfig()
	message := fmt.Sprintf("✅ *Entrega Realizada*\n\nOrden: %s\nCliente: %s\nEstado: ENTREGADO\nConductor: %s",
		dispatch.ConsecutivoCotizacion, dispatch.ClienteNombre, dispatch.ConductorNombre)
	if cfg.LogisticsPhone != "" {
		services.EnqueueWhatsApp(db, cfg.LogisticsPhone, message)
	}
	if dispatch.EjecutivoTelefono != "" {
		services.EnqueueWhatsApp(db, dispatch.EjecutivoTelefono, message)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dispatch,
	})
}

// UploadDispatchProof handles POST /api/v1/dispatches/:id/proof - attaches
// a delivery photo to the entrega or remision slot.
func UploadDispatchProof(c *gin.Context) {
	db := config.GetDB()
	var dispatch models.Dispatch
	if err := db.First(&dispatch, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISPATCH_NOT_FOUND",
				"message": "Dispatch does not exist",
			},
		})
		return
	}

	proofType := c.PostForm("type")
	if proofType != "entrega" && proofType != "remision" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "type must be entrega or remision",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_FILE",
				"message": "No photo file provided",
			},
		})
		return
	}
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE",
				"message": err.Error(),
			},
		})
		return
	}

	imageKey, err := services.GetImageService().UploadImage(fileHeader, "despachos")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload photo",
			},
		})
		return
	}

	if proofType == "entrega" {
		dispatch.FotoEntrega = imageKey
	} else {
		dispatch.FotoRemision = imageKey
	}
	if geo := c.PostForm("georeferencia"); geo != "" {
		dispatch.Georeferencia = geo
	}

	if err := db.Save(&dispatch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar despacho",
			},
		})
		return
	}

	services.PublishChange("despachos", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dispatch,
	})
}

// GetDispatchMapLink handles GET /api/v1/dispatches/:id/map-link - builds
// the Google Maps search link for the delivery location. Location falls
// back from georeferencia to the client's stored coordinates to the
// delivery address.
func GetDispatchMapLink(c *gin.Context) {
	db := config.GetDB()
	var dispatch models.Dispatch
	if err := db.First(&dispatch, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISPATCH_NOT_FOUND",
				"message": "Dispatch does not exist",
			},
		})
		return
	}

	coordenadas := ""
	var client models.Client
	if err := db.First(&client, "id = ?", dispatch.ClienteID).Error; err == nil {
		coordenadas = client.Coordenadas
	}

	location := utils.BestLocation(dispatch.Georeferencia, coordenadas, dispatch.Direccion)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"location": location,
			"url":      utils.MapSearchLink(location),
		},
	})
}
