package controllers

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/middleware"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

// ListQuotes handles GET /api/v1/quotes - Admins see every quote,
// everyone else only their own.
func ListQuotes(c *gin.Context) {
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

	var quotes []models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load quotes",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quotes,
	})
}

// CreateQuote handles POST /api/v1/quotes - creates a quote owned by the
// authenticated user. Totals are always recomputed server-side from the
// line items; client-supplied totals are ignored.
func CreateQuote(c *gin.Context) {
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

	var quote models.Quote
	if err := c.ShouldBindJSON(&quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid quote data",
				"details": err.Error(),
			},
		})
		return
	}

	quote.ID = ""
	quote.UsuarioID = claims.Subject
	if quote.Estado == "" {
		quote.Estado = models.QuoteStatusFollowUp
	}
	if quote.Fecha == "" {
		quote.Fecha = time.Now().Format("2006-01-02")
	}
	if quote.Consecutivo == "" {
		quote.Consecutivo = fmt.Sprintf("HS-%d-%d", time.Now().Year(), rand.Intn(900)+100)
	}
	quote.ComputeTotals()

	db := config.GetDB()

	// Snapshot the client name at quote time
	if quote.ClienteNombre == "" {
		var client models.Client
		if err := db.First(&client, "id = ?", quote.ClienteID).Error; err == nil {
			quote.ClienteNombre = client.Nombre
		} else {
			quote.ClienteNombre = "N/A"
		}
	}

	if err := db.Create(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al añadir cotización",
			},
		})
		return
	}

	services.PublishChange("cotizaciones", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    quote,
	})
}

// UpdateQuote handles PUT /api/v1/quotes/:id - full-record replace.
// Marking a quote Ganado triggers the fulfillment workflow: the first
// such transition creates the dispatch and queues the win notifications.
// The quote's own update stands even if dispatch creation fails; there
// is no compensating rollback.
func UpdateQuote(c *gin.Context) {
	var quote models.Quote
	if err := c.ShouldBindJSON(&quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid quote data",
				"details": err.Error(),
			},
		})
		return
	}
	quote.ID = c.Param("id")
	quote.ComputeTotals()

	db := config.GetDB()
	if err := db.Save(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar cotización",
			},
		})
		return
	}
	services.PublishChange("cotizaciones", "update")

	dispatchCreated := false
	if quote.Estado == models.QuoteStatusWon {
		dispatchCreated = createDispatchForWonQuote(db, &quote)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
		"meta": gin.H{
			"dispatchCreated": dispatchCreated,
		},
	})
}

// createDispatchForWonQuote creates the delivery task for a won quote,
// at most once per quote. Returns true when a new dispatch was created.
//
// The presence check plus the unique index on cotizacion_id make the
// rule idempotent even when two sessions mark the same quote won at
// once: the second insert fails on the constraint and is treated the
// same as "already exists".
func createDispatchForWonQuote(db *gorm.DB, quote *models.Quote) bool {
	var count int64
	db.Model(&models.Dispatch{}).Where("cotizacion_id = ?", quote.ID).Count(&count)
	if count > 0 {
		return false
	}

	// Resolve the delivery address from the client record
	direccion := "N/A"
	var client models.Client
	if err := db.First(&client, "id = ?", quote.ClienteID).Error; err == nil && client.Direccion != "" {
		direccion = client.Direccion
	}

	// Map quote lines to delivery lines, resolving product display data
	items := make([]models.DispatchItem, 0, len(quote.Items))
	for _, item := range quote.Items {
		nombre := "Producto Desconocido"
		numPart := "N/A"
		var prod models.Product
		if err := db.First(&prod, "id = ?", item.ProductoID).Error; err == nil {
			nombre = prod.Nombre
			numPart = prod.NumPart
		}
		items = append(items, models.DispatchItem{
			ProductoID:     item.ProductoID,
			NombreProducto: nombre,
			NumPart:        numPart,
			Cantidad:       item.Cantidad,
		})
	}

	dispatch := models.Dispatch{
		CotizacionID:          quote.ID,
		ConsecutivoCotizacion: quote.Consecutivo,
		FechaSolicitud:        time.Now().Format("2006-01-02"),
		ClienteID:             quote.ClienteID,
		ClienteNombre:         quote.ClienteNombre,
		Direccion:             direccion,
		Items:                 items,
		Total:                 quote.Total,
		EjecutivoEmail:        quote.EjecutivoEmail,
		EjecutivoTelefono:     quote.EjecutivoTelefono,
		UsuarioID:             quote.UsuarioID,
		Estado:                models.DispatchStatusPending,
	}

	if err := db.Create(&dispatch).Error; err != nil {
		// The quote is already Ganado at this point; a lost race or a
		// store failure both leave it without a dispatch and no retry
		// is attempted.
		return false
	}

	services.PublishChange("despachos", "insert")

	// Notifications fire only after the dispatch persisted
	if quote.EjecutivoEmail != "" {
		services.EnqueueEmail(db,
			quote.EjecutivoEmail,
			fmt.Sprintf("Nuevo Pedido: %s", quote.Consecutivo),
			fmt.Sprintf("Hola, tu cotización %s ha sido marcada como GANADA y ya se encuentra en trámite de logística.", quote.Consecutivo),
		)
	}
	services.EnqueueEmail(db,
		config.GetConfig().LogisticsEmail,
		fmt.Sprintf("NUEVO PEDIDO - Cotización %s", quote.Consecutivo),
		fmt.Sprintf("Se ha generado un nuevo pedido desde la cotización %s para el cliente %s.\n\nPor favor iniciar el proceso de alistamiento y despacho.", quote.Consecutivo, quote.ClienteNombre),
	)

	return true
}

// DeleteQuote handles DELETE /api/v1/quotes/:id
func DeleteQuote(c *gin.Context) {
	db := config.GetDB()
	if err := db.Delete(&models.Quote{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar cotización",
			},
		})
		return
	}

	services.PublishChange("cotizaciones", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// GetQuotePDF handles GET /api/v1/quotes/:id/pdf - renders the quote
// document. The quote itself is already saved; a rendering failure here
// does not undo anything.
func GetQuotePDF(c *gin.Context) {
	db := config.GetDB()
	var quote models.Quote
	if err := db.First(&quote, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QUOTE_NOT_FOUND",
				"message": "Quote does not exist",
			},
		})
		return
	}

	var client *models.Client
	var found models.Client
	if err := db.First(&found, "id = ?", quote.ClienteID).Error; err == nil {
		client = &found
	}

	products := make(map[string]models.Product)
	var all []models.Product
	if err := db.Find(&all).Error; err == nil {
		for _, p := range all {
			products[p.ID] = p
		}
	}

	cfg := config.GetConfig()
	condiciones := c.Query("condiciones")
	pdfBytes, err := services.GenerateQuotePDF(&quote, client, products, condiciones, cfg)
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

	filename := services.QuotePDFFilename(cfg, quote.Consecutivo)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
