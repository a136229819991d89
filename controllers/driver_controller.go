package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
	"github.com/helpsoluciones/crm-api/utils"
)

// ListDrivers handles GET /api/v1/drivers
func ListDrivers(c *gin.Context) {
	db := config.GetDB()
	var drivers []models.Driver
	if err := db.Order("created_at DESC").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load drivers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    drivers,
	})
}

// CreateDriver handles POST /api/v1/drivers
func CreateDriver(c *gin.Context) {
	var driver models.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid driver data",
				"details": err.Error(),
			},
		})
		return
	}

	driver.ID = ""
	db := config.GetDB()
	if err := db.Create(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al añadir conductor",
			},
		})
		return
	}

	services.PublishChange("conductores", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    driver,
	})
}

// UpdateDriver handles PUT /api/v1/drivers/:id
func UpdateDriver(c *gin.Context) {
	var driver models.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid driver data",
				"details": err.Error(),
			},
		})
		return
	}
	driver.ID = c.Param("id")

	db := config.GetDB()
	if err := db.Save(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar conductor",
			},
		})
		return
	}

	services.PublishChange("conductores", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    driver,
	})
}

// DeleteDriver handles DELETE /api/v1/drivers/:id
func DeleteDriver(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.Driver{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar conductor",
			},
		})
		return
	}

	services.PublishChange("conductores", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// UploadDriverDocument handles POST /api/v1/drivers/:id/documents - stores
// one of the vehicle documents (tarjetaPropiedad, soat, tecnomecanica).
func UploadDriverDocument(c *gin.Context) {
	db := config.GetDB()
	var driver models.Driver
	if err := db.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DRIVER_NOT_FOUND",
				"message": "Driver does not exist",
			},
		})
		return
	}

	docType := c.PostForm("type")
	if docType != models.DriverDocPropertyCard && docType != models.DriverDocSOAT && docType != models.DriverDocInspection {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "type must be tarjetaPropiedad, soat or tecnomecanica",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_FILE",
				"message": "No document file provided",
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

	imageKey, err := services.GetImageService().UploadImage(fileHeader, "conductores")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload document",
			},
		})
		return
	}

	switch docType {
	case models.DriverDocPropertyCard:
		driver.TarjetaPropiedad = imageKey
	case models.DriverDocSOAT:
		driver.SOAT = imageKey
	case models.DriverDocInspection:
		driver.Tecnomecanica = imageKey
	}

	if err := db.Save(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar conductor",
			},
		})
		return
	}

	services.PublishChange("conductores", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    driver,
	})
}

// routeStop is one stop on a driver's consolidated route
type routeStop struct {
	Type        string `json:"type"` // despacho or ordenCompra
	ID          string `json:"id"`
	Consecutivo string `json:"consecutivo"`
	Nombre      string `json:"nombre"`
	Location    string `json:"location"`
}

// GetDriverRoute handles GET /api/v1/drivers/:id/route - collects the
// driver's open dispatches and purchase orders and builds a multi-stop
// Google Maps directions link. Each stop resolves its location through
// the georeferencia, stored coordinates, free-text address chain.
func GetDriverRoute(c *gin.Context) {
	db := config.GetDB()
	driverID := c.Param("id")

	var dispatches []models.Dispatch
	db.Where("conductor_id = ? AND estado <> ?", driverID, models.DispatchStatusDelivered).Find(&dispatches)

	var orders []models.PurchaseOrder
	db.Where("conductor_id = ? AND estado = ?", driverID, models.POStatusPending).Find(&orders)

	stops := make([]routeStop, 0, len(dispatches)+len(orders))
	for _, d := range dispatches {
		coordenadas := ""
		var client models.Client
		if err := db.First(&client, "id = ?", d.ClienteID).Error; err == nil {
			coordenadas = client.Coordenadas
		}
		stops = append(stops, routeStop{
			Type:        "despacho",
			ID:          d.ID,
			Consecutivo: d.ConsecutivoCotizacion,
			Nombre:      d.ClienteNombre,
			Location:    utils.BestLocation(d.Georeferencia, coordenadas, d.Direccion),
		})
	}
	for _, o := range orders {
		coordenadas := ""
		direccion := ""
		var supplier models.Supplier
		if err := db.First(&supplier, "id = ?", o.ProveedorID).Error; err == nil {
			coordenadas = supplier.Coordenadas
			direccion = supplier.Direccion
		}
		stops = append(stops, routeStop{
			Type:        "ordenCompra",
			ID:          o.ID,
			Consecutivo: o.Consecutivo,
			Nombre:      o.NombreProveedor,
			Location:    utils.BestLocation(o.Georeferencia, coordenadas, direccion, o.NombreProveedor),
		})
	}

	locations := make([]string, 0, len(stops))
	for _, s := range stops {
		locations = append(locations, s.Location)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"stops": stops,
			"url":   utils.DirectionsLink(locations),
		},
	})
}
