package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

// ListBudgets handles GET /api/v1/budgets
func ListBudgets(c *gin.Context) {
	db := config.GetDB()
	var budgets []models.SalesBudget
	if err := db.Order("anio DESC, mes DESC").Find(&budgets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load budgets",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    budgets,
	})
}

// CreateBudget handles POST /api/v1/budgets - one budget per salesperson
// per period; a duplicate period is rejected by the unique index.
func CreateBudget(c *gin.Context) {
	var budget models.SalesBudget
	if err := c.ShouldBindJSON(&budget); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid budget data",
				"details": err.Error(),
			},
		})
		return
	}

	budget.ID = ""
	db := config.GetDB()

	if budget.NombreVendedor == "" {
		var user models.User
		if err := db.First(&user, "id = ?", budget.UsuarioID).Error; err == nil {
			budget.NombreVendedor = user.Nombre
		}
	}

	if err := db.Create(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_PERIOD",
					"message": "Ya existe un presupuesto para ese vendedor y periodo",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save budget",
			},
		})
		return
	}

	services.PublishChange("budgets", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    budget,
	})
}

// UpdateBudget handles PUT /api/v1/budgets/:id
func UpdateBudget(c *gin.Context) {
	var budget models.SalesBudget
	if err := c.ShouldBindJSON(&budget); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid budget data",
				"details": err.Error(),
			},
		})
		return
	}
	budget.ID = c.Param("id")

	db := config.GetDB()
	if err := db.Save(&budget).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar presupuesto",
			},
		})
		return
	}

	services.PublishChange("budgets", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    budget,
	})
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
func DeleteBudget(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.SalesBudget{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar presupuesto",
			},
		})
		return
	}

	services.PublishChange("budgets", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
