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

type purchaseOrderWithSLA struct {
	models.PurchaseOrder
	SLA slaIndicator `json:"sla"`
}

// ListPurchaseOrders handles GET /api/v1/purchase-orders - Admins see all
// orders, everyone else only their own. Each row carries its SLA
// indicator, aged from fecha; warehoused orders count as completed.
func ListPurchaseOrders(c *gin.Context) {
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
	if claims.Rol != models.RoleAdmin {
		query = query.Where("usuario_id = ?", claims.Subject)
	}

	var orders []models.PurchaseOrder
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load purchase orders",
			},
		})
		return
	}

	now := time.Now()
	result := make([]purchaseOrderWithSLA, 0, len(orders))
	for i := range orders {
		result = append(result, purchaseOrderWithSLA{
			PurchaseOrder: orders[i],
			SLA:           computeSLA(orders[i].Fecha, orders[i].Estado, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// computePOTotals fills subtotal, IVA (19%) and total from the line items
func computePOTotals(order *models.PurchaseOrder) {
	var subtotal float64
	for _, item := range order.Items {
		subtotal += item.PrecioUnitario * item.Cantidad
	}
	order.Subtotal = subtotal
	order.IVA = subtotal * 0.19
	order.Total = order.Subtotal + order.IVA
}

// CreatePurchaseOrder handles POST /api/v1/purchase-orders - assigns the
// next OC-%04d consecutive and recomputes totals from the lines.
func CreatePurchaseOrder(c *gin.Context) {
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

	var order models.PurchaseOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid purchase order data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	order.ID = ""
	order.UsuarioID = claims.Subject
	if order.Estado == "" {
		order.Estado = models.POStatusPending
	}
	if order.Fecha == "" {
		order.Fecha = time.Now().Format("2006-01-02")
	}
	if order.Consecutivo == "" {
		var count int64
		db.Model(&models.PurchaseOrder{}).Count(&count)
		order.Consecutivo = fmt.Sprintf("OC-%04d", count+1)
	}
	computePOTotals(&order)

	if order.NombreProveedor == "" {
		var supplier models.Supplier
		if err := db.First(&supplier, "id = ?", order.ProveedorID).Error; err == nil {
			order.NombreProveedor = supplier.Nombre
		}
	}

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al añadir orden de compra",
			},
		})
		return
	}

	services.PublishChange("ordenes_compra", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdatePurchaseOrder handles PUT /api/v1/purchase-orders/:id
func UpdatePurchaseOrder(c *gin.Context) {
	var order models.PurchaseOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid purchase order data",
				"details": err.Error(),
			},
		})
		return
	}
	order.ID = c.Param("id")
	computePOTotals(&order)

	db := config.GetDB()
	if err := db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar orden de compra",
			},
		})
		return
	}

	services.PublishChange("ordenes_compra", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeletePurchaseOrder handles DELETE /api/v1/purchase-orders/:id
func DeletePurchaseOrder(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.PurchaseOrder{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar orden de compra",
			},
		})
		return
	}

	services.PublishChange("ordenes_compra", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// CompletePurchaseOrder handles POST /api/v1/purchase-orders/:id/complete -
// marks the order as picked up by its driver.
func CompletePurchaseOrder(c *gin.Context) {
	db := config.GetDB()
	var order models.PurchaseOrder
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Purchase order does not exist",
			},
		})
		return
	}

	order.Estado = models.POStatusPickedUp
	if err := db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar orden de compra",
			},
		})
		return
	}

	services.PublishChange("ordenes_compra", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UploadPurchaseOrderProof handles POST /api/v1/purchase-orders/:id/proof -
// attaches a pickup photo. The "type" form field selects the slot
// (entrega or remision); "georeferencia" optionally records where the
// photo was taken.
func UploadPurchaseOrderProof(c *gin.Context) {
	db := config.GetDB()
	var order models.PurchaseOrder
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Purchase order does not exist",
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

	imageKey, err := services.GetImageService().UploadImage(fileHeader, "ordenes-compra")
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
		order.FotoEntrega = imageKey
	} else {
		order.FotoRemision = imageKey
	}
	if geo := c.PostForm("georeferencia"); geo != "" {
		order.Georeferencia = geo
	}

	if err := db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar orden de compra",
			},
		})
		return
	}

	services.PublishChange("ordenes_compra", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetPurchaseOrderPDF handles GET /api/v1/purchase-orders/:id/pdf
func GetPurchaseOrderPDF(c *gin.Context) {
	db := config.GetDB()
	var order models.PurchaseOrder
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Purchase order does not exist",
			},
		})
		return
	}

	var supplier *models.Supplier
	var found models.Supplier
	if err := db.First(&found, "id = ?", order.ProveedorID).Error; err == nil {
		supplier = &found
	}

	cfg := config.GetConfig()
	pdfBytes, err := services.GeneratePurchaseOrderPDF(&order, supplier, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOCUMENT_ERROR",
				"message": "Error al generar el PDF. Verifique los datos ingresados.",
			},
		})
		return
	}

	filename := services.PurchaseOrderPDFFilename(order.Consecutivo, order.NombreProveedor)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
