package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

// CreateSupplierRequest represents the request body for creating or
// updating a supplier. Coordinates are mandatory for suppliers since
// pickup routes depend on them.
type CreateSupplierRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	NIT         string `json:"nit"`
	Contacto    string `json:"contacto"`
	Telefono    string `json:"telefono"`
	Correo      string `json:"correo"`
	Direccion   string `json:"direccion"`
	Coordenadas string `json:"coordenadas" binding:"required"`
}

// ListSuppliers handles GET /api/v1/suppliers
func ListSuppliers(c *gin.Context) {
	db := config.GetDB()
	var suppliers []models.Supplier
	if err := db.Find(&suppliers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load suppliers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    suppliers,
	})
}

// CreateSupplier handles POST /api/v1/suppliers
func CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid supplier data",
				"details": err.Error(),
			},
		})
		return
	}

	supplier := models.Supplier{
		Nombre:      req.Nombre,
		NIT:         req.NIT,
		Contacto:    req.Contacto,
		Telefono:    req.Telefono,
		Correo:      req.Correo,
		Direccion:   req.Direccion,
		Coordenadas: req.Coordenadas,
	}

	db := config.GetDB()
	if err := db.Create(&supplier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al añadir proveedor",
			},
		})
		return
	}

	services.PublishChange("proveedores", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// UpdateSupplier handles PUT /api/v1/suppliers/:id - full-record replace
func UpdateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid supplier data",
				"details": err.Error(),
			},
		})
		return
	}

	supplier := models.Supplier{
		ID:          c.Param("id"),
		Nombre:      req.Nombre,
		NIT:         req.NIT,
		Contacto:    req.Contacto,
		Telefono:    req.Telefono,
		Correo:      req.Correo,
		Direccion:   req.Direccion,
		Coordenadas: req.Coordenadas,
	}

	db := config.GetDB()
	if err := db.Save(&supplier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar proveedor",
			},
		})
		return
	}

	services.PublishChange("proveedores", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// DeleteSupplier handles DELETE /api/v1/suppliers/:id
func DeleteSupplier(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.Supplier{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar proveedor",
			},
		})
		return
	}

	services.PublishChange("proveedores", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
