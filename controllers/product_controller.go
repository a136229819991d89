package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

// ListProducts handles GET /api/v1/products
func ListProducts(c *gin.Context) {
	db := config.GetDB()
	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// CreateProduct handles POST /api/v1/products - creates a catalog item
// and seeds its price history with the opening purchase price.
func CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product data",
				"details": err.Error(),
			},
		})
		return
	}
	product.ID = ""
	product.History = nil
	product.AppendPricePoint(time.Now().Format("2006-01-02"))

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al añadir producto",
			},
		})
		return
	}

	services.PublishChange("productos", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id - full-record replace.
// The stored history is authoritative: whatever history the payload
// carries is discarded, the existing entries are kept and the incoming
// purchase price is appended. History never shrinks.
func UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product data",
				"details": err.Error(),
			},
		})
		return
	}
	product.ID = c.Param("id")

	db := config.GetDB()
	var existing models.Product
	if err := db.First(&existing, "id = ?", product.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product does not exist",
			},
		})
		return
	}

	product.History = existing.History
	product.AppendPricePoint(time.Now().Format("2006-01-02"))

	if err := db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar producto",
			},
		})
		return
	}

	services.PublishChange("productos", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id
func DeleteProduct(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.Product{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar producto",
			},
		})
		return
	}

	services.PublishChange("productos", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
