package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/controllers"
	"github.com/helpsoluciones/crm-api/middleware"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

func main() {
	log.Println("Starting HELP SOLUCIONES CRM API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetConfig(cfg)

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Supplier{},
		&models.Product{},
		&models.Quote{},
		&models.PurchaseOrder{},
		&models.Dispatch{},
		&models.Driver{},
		&models.Repair{},
		&models.SalesBudget{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if s3Service, err := services.InitS3Service(); err != nil {
		log.Printf("Warning: S3 service not available, image uploads disabled: %v", err)
	} else {
		services.InitImageService(s3Service)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerRoutes(router, cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func registerRoutes(router *gin.Engine, cfg *config.Config) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthCheck)
	v1.POST("/auth/login", controllers.Login)

	authed := v1.Group("")
	authed.Use(middleware.EnsureValidToken(cfg))

	authed.GET("/auth/me", controllers.GetMe)
	authed.GET("/events", controllers.StreamEvents)

	clients := authed.Group("/clients", middleware.RequireModule("clientes"))
	{
		clients.GET("", controllers.ListClients)
		clients.POST("", controllers.CreateClient)
		clients.PUT("/:id", controllers.UpdateClient)
		clients.DELETE("/:id", controllers.DeleteClient)
	}

	suppliers := authed.Group("/suppliers", middleware.RequireModule("proveedores"))
	{
		suppliers.GET("", controllers.ListSuppliers)
		suppliers.POST("", controllers.CreateSupplier)
		suppliers.PUT("/:id", controllers.UpdateSupplier)
		suppliers.DELETE("/:id", controllers.DeleteSupplier)
	}

	products := authed.Group("/products", middleware.RequireModule("productos"))
	{
		products.GET("", controllers.ListProducts)
		products.POST("", controllers.CreateProduct)
		products.PUT("/:id", controllers.UpdateProduct)
		products.DELETE("/:id", controllers.DeleteProduct)
	}

	quotes := authed.Group("/quotes", middleware.RequireModule("cotizaciones"))
	{
		quotes.GET("", controllers.ListQuotes)
		quotes.POST("", controllers.CreateQuote)
		quotes.PUT("/:id", controllers.UpdateQuote)
		quotes.DELETE("/:id", controllers.DeleteQuote)
		quotes.GET("/:id/pdf", controllers.GetQuotePDF)
	}

	orders := authed.Group("/purchase-orders", middleware.RequireModule("ordenesCompra"))
	{
		orders.GET("", controllers.ListPurchaseOrders)
		orders.POST("", controllers.CreatePurchaseOrder)
		orders.PUT("/:id", controllers.UpdatePurchaseOrder)
		orders.DELETE("/:id", controllers.DeletePurchaseOrder)
		orders.POST("/:id/complete", controllers.CompletePurchaseOrder)
		orders.POST("/:id/proof", controllers.UploadPurchaseOrderProof)
		orders.GET("/:id/pdf", controllers.GetPurchaseOrderPDF)
	}

	dispatches := authed.Group("/dispatches", middleware.RequireModule("despachos"))
	{
		dispatches.GET("", controllers.ListDispatches)
		dispatches.PUT("/:id", controllers.UpdateDispatch)
		dispatches.DELETE("/:id", controllers.DeleteDispatch)
		dispatches.POST("/:id/complete", controllers.CompleteDispatch)
		dispatches.POST("/:id/proof", controllers.UploadDispatchProof)
		dispatches.GET("/:id/map-link", controllers.GetDispatchMapLink)
	}

	drivers := authed.Group("/drivers", middleware.RequireModule("conductores"))
	{
		drivers.GET("", controllers.ListDrivers)
		drivers.POST("", controllers.CreateDriver)
		drivers.PUT("/:id", controllers.UpdateDriver)
		drivers.DELETE("/:id", controllers.DeleteDriver)
		drivers.POST("/:id/documents", controllers.UploadDriverDocument)
		drivers.GET("/:id/route", controllers.GetDriverRoute)
	}

	repairs := authed.Group("/repairs", middleware.RequireModule("reparaciones"))
	{
		repairs.GET("", controllers.ListRepairs)
		repairs.POST("", controllers.CreateRepair)
		repairs.PUT("/:id", controllers.UpdateRepair)
		repairs.DELETE("/:id", controllers.DeleteRepair)
		repairs.POST("/:id/photo", controllers.UploadRepairPhoto)
		repairs.GET("/:id/ticket", controllers.GetRepairTicket)
	}

	budgets := authed.Group("/budgets", middleware.RequireRole(models.RoleAdmin))
	{
		budgets.GET("", controllers.ListBudgets)
		budgets.POST("", controllers.CreateBudget)
		budgets.PUT("/:id", controllers.UpdateBudget)
		budgets.DELETE("/:id", controllers.DeleteBudget)
	}

	users := authed.Group("/users", middleware.RequireRole(models.RoleAdmin))
	{
		users.GET("", controllers.ListUsers)
		users.POST("", controllers.CreateUser)
		users.PUT("/:id", controllers.UpdateUser)
		users.DELETE("/:id", controllers.DeleteUser)
	}

	reports := authed.Group("/reports", middleware.RequireModule("informes"))
	{
		reports.GET("/quotes", controllers.GetQuotesReport)
		reports.GET("/quotes/export", controllers.ExportQuotesReport)
		reports.GET("/performance", controllers.GetPerformanceReport)
		reports.GET("/dashboard", controllers.GetDashboardReport)
	}

	authed.GET("/uploads/url", controllers.GetImageURL)

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", controllers.ListNotifications)
		notifications.POST("/:id/dispatch", controllers.DispatchNotification)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "HELP SOLUCIONES CRM API is running",
	})
}
