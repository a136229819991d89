package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
	"github.com/helpsoluciones/crm-api/utils"
)

// ListRepairs handles GET /api/v1/repairs
func ListRepairs(c *gin.Context) {
	db := config.GetDB()
	var repairs []models.Repair
	if err := db.Order("created_at DESC").Find(&repairs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load repairs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    repairs,
	})
}

// CreateRepair handles POST /api/v1/repairs - assigns the next REP-%03d
// consecutive and snapshots the client and supplier display names.
func CreateRepair(c *gin.Context) {
	var repair models.Repair
	if err := c.ShouldBindJSON(&repair); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid repair data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	repair.ID = ""
	if repair.Estado == "" {
		repair.Estado = models.RepairStatusReceived
	}
	if repair.TipoServicio == "" {
		repair.TipoServicio = models.RepairServiceInternal
	}
	if repair.FechaIngreso == "" {
		repair.FechaIngreso = time.Now().Format("2006-01-02")
	}
	if repair.Consecutivo == "" {
		var count int64
		db.Model(&models.Repair{}).Count(&count)
		repair.Consecutivo = fmt.Sprintf("REP-%03d", count+1)
	}

	if repair.ClienteNombre == "" {
		repair.ClienteNombre = "Desconocido"
		var client models.Client
		if err := db.First(&client, "id = ?", repair.ClienteID).Error; err == nil {
			repair.ClienteNombre = client.Nombre
		}
	}
	if repair.TipoServicio == models.RepairServiceSupplier && repair.ProveedorNombre == "" {
		repair.ProveedorNombre = "Proveedor Desconocido"
		var supplier models.Supplier
		if err := db.First(&supplier, "id = ?", repair.ProveedorID).Error; err == nil {
			repair.ProveedorNombre = supplier.Nombre
		}
	}

	if err := db.Create(&repair).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al añadir reparación",
			},
		})
		return
	}

	services.PublishChange("reparaciones", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    repair,
	})
}

// UpdateRepair handles PUT /api/v1/repairs/:id
func UpdateRepair(c *gin.Context) {
	var repair models.Repair
	if err := c.ShouldBindJSON(&repair); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid repair data",
				"details": err.Error(),
			},
		})
		return
	}
	repair.ID = c.Param("id")

	db := config.GetDB()
	if err := db.Save(&repair).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar reparación",
			},
		})
		return
	}

	services.PublishChange("reparaciones", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    repair,
	})
}

// DeleteRepair handles DELETE /api/v1/repairs/:id
func DeleteRepair(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.Repair{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar reparación",
			},
		})
		return
	}

	services.PublishChange("reparaciones", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// UploadRepairPhoto handles POST /api/v1/repairs/:id/photo
func UploadRepairPhoto(c *gin.Context) {
	db := config.GetDB()
	var repair models.Repair
	if err := db.First(&repair, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPAIR_NOT_FOUND",
				"message": "Repair does not exist",
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

	imageKey, err := services.GetImageService().UploadImage(fileHeader, "reparaciones")
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

	repair.Foto = imageKey
	if err := db.Save(&repair).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar reparación",
			},
		})
		return
	}

	services.PublishChange("reparaciones", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    repair,
	})
}

// GetRepairTicket handles GET /api/v1/repairs/:id/ticket - renders the
// 80x150mm intake ticket with the tracking QR code.
func GetRepairTicket(c *gin.Context) {
	db := config.GetDB()
	var repair models.Repair
	if err := db.First(&repair, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPAIR_NOT_FOUND",
				"message": "Repair does not exist",
			},
		})
		return
	}

	cfg := config.GetConfig()
	pdfBytes, err := services.GenerateRepairTicket(&repair, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOCUMENT_ERROR",
				"message": "Error al generar el ticket",
			},
		})
		return
	}

	filename := services.RepairTicketFilename(repair.Consecutivo)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
