package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/middleware"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

// quotesInRange loads quotes filtered by the optional from/to date bounds
// (YYYY-MM-DD, inclusive) applied to the quote's fecha field.
func quotesInRange(db *gorm.DB, from, to string) ([]models.Quote, error) {
	query := db.Order("fecha ASC")
	if from != "" {
		query = query.Where("fecha >= ?", from)
	}
	if to != "" {
		query = query.Where("fecha <= ?", to)
	}

	var quotes []models.Quote
	err := query.Find(&quotes).Error
	return quotes, err
}

// GetQuotesReport handles GET /api/v1/reports/quotes?from&to
func GetQuotesReport(c *gin.Context) {
	db := config.GetDB()
	quotes, err := quotesInRange(db, c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load quotes",
			},
		})
		return
	}

	var total float64
	for _, q := range quotes {
		total += q.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"quotes": quotes,
			"count":  len(quotes),
			"total":  total,
		},
	})
}

// ExportQuotesReport handles GET /api/v1/reports/quotes/export - streams
// the filtered quote list as an XLSX workbook.
func ExportQuotesReport(c *gin.Context) {
	db := config.GetDB()
	quotes, err := quotesInRange(db, c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load quotes",
			},
		})
		return
	}

	data, err := services.ExportQuotesXLSX(quotes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOCUMENT_ERROR",
				"message": "Error al generar el archivo de Excel",
			},
		})
		return
	}

	filename := fmt.Sprintf("Informe_Cotizaciones_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// monthBounds returns the first day of the month containing t and the
// first day of the following month, as YYYY-MM-DD strings.
func monthBounds(t time.Time) (string, string) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start.Format("2006-01-02"), start.AddDate(0, 1, 0).Format("2006-01-02")
}

// GetPerformanceReport handles GET /api/v1/reports/performance - compares
// the caller's won sales for the current month against their budget for
// the period.
func GetPerformanceReport(c *gin.Context) {
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
	now := time.Now()
	monthStart, nextMonth := monthBounds(now)

	var won []models.Quote
	db.Where("usuario_id = ? AND estado = ? AND fecha >= ? AND fecha < ?",
		claims.Subject, models.QuoteStatusWon, monthStart, nextMonth).Find(&won)

	var ventas float64
	for _, q := range won {
		ventas += q.Total
	}

	// Budget months are stored 0-based
	var budget models.SalesBudget
	monto := 0.0
	if err := db.Where("usuario_id = ? AND anio = ? AND mes = ?",
		claims.Subject, now.Year(), int(now.Month())-1).First(&budget).Error; err == nil {
		monto = budget.Monto
	}

	executionPercent := 0.0
	if monto > 0 {
		executionPercent = ventas / monto * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"anio":             now.Year(),
			"mes":              int(now.Month()) - 1,
			"monto":            monto,
			"ventas":           ventas,
			"executionPercent": executionPercent,
			"difference":       ventas - monto,
		},
	})
}

// GetDashboardReport handles GET /api/v1/reports/dashboard - month over
// month quote activity plus the current delivery pipeline.
func GetDashboardReport(c *gin.Context) {
	db := config.GetDB()
	now := time.Now()
	curStart, nextMonth := monthBounds(now)
	prevStart, _ := monthBounds(now.AddDate(0, -1, 0))

	var curCount, prevCount int64
	db.Model(&models.Quote{}).Where("fecha >= ? AND fecha < ?", curStart, nextMonth).Count(&curCount)
	db.Model(&models.Quote{}).Where("fecha >= ? AND fecha < ?", prevStart, curStart).Count(&prevCount)

	growthPercent := 0.0
	if prevCount > 0 {
		growthPercent = float64(curCount-prevCount) / float64(prevCount) * 100
	}

	var won []models.Quote
	db.Where("estado = ? AND fecha >= ? AND fecha < ?", models.QuoteStatusWon, curStart, nextMonth).Find(&won)
	var wonRevenue float64
	for _, q := range won {
		wonRevenue += q.Total
	}

	var delivered, inTransit int64
	db.Model(&models.Dispatch{}).Where("estado = ?", models.DispatchStatusDelivered).Count(&delivered)
	db.Model(&models.Dispatch{}).Where("estado <> ?", models.DispatchStatusDelivered).Count(&inTransit)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"quotesThisMonth": curCount,
			"quotesLastMonth": prevCount,
			"growthPercent":   growthPercent,
			"wonThisMonth":    len(won),
			"wonRevenue":      wonRevenue,
			"delivered":       delivered,
			"inTransit":       inTransit,
		},
	})
}
