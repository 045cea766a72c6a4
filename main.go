package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/controllers"
	"github.com/marco-valdez/la-comanda-api/middleware"
	"github.com/marco-valdez/la-comanda-api/models"
	"github.com/marco-valdez/la-comanda-api/services"
)

func main() {
	seed := flag.Bool("seed", false, "seed initial menu items and admin account")
	flag.Parse()

	// Basic logging
	log.Println("Starting La Comanda API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	err = db.AutoMigrate(
		&models.Staff{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.LineItem{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if *seed {
		if err := seedInitialData(db); err != nil {
			log.Fatalf("Failed to seed initial data: %v", err)
		}
	}

	// Kitchen websocket feed
	services.InitKitchenHub()

	// Initialize Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.RateLimit())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSAllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		v1.POST("/auth/login", controllers.Login)

		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(cfg))
		{
			// Orders
			authed.POST("/orders",
				middleware.RequireCapability(services.CapCreateOrders),
				controllers.CreateOrder)
			authed.GET("/orders", controllers.ListOrders)
			authed.GET("/orders/stats",
				middleware.RequireCapability(services.CapViewReports),
				controllers.GetOrderStats)
			authed.GET("/orders/:id", controllers.GetOrder)
			authed.PUT("/orders/:id/status",
				middleware.RequireCapability(services.CapUpdateOrderStatus),
				controllers.UpdateOrderStatus)
			authed.POST("/orders/:id/recalculate", controllers.RecalculateOrderTotal)
			authed.DELETE("/orders/:id",
				middleware.RequireCapability(services.CapDeleteOrders),
				controllers.DeleteOrder)

			// Menu
			authed.GET("/menu", controllers.ListMenuItems)
			authed.GET("/menu/categories", controllers.ListCategories)
			authed.GET("/menu/:id", controllers.GetMenuItem)
			authed.POST("/menu",
				middleware.RequireCapability(services.CapManageMenu),
				controllers.CreateMenuItem)
			authed.PUT("/menu/:id",
				middleware.RequireCapability(services.CapManageMenu),
				controllers.UpdateMenuItem)
			authed.POST("/menu/:id/toggle",
				middleware.RequireCapability(services.CapManageMenu),
				controllers.ToggleMenuItemAvailability)
			authed.DELETE("/menu/:id",
				middleware.RequireCapability(services.CapManageMenu),
				controllers.DeleteMenuItem)

			// Tables
			authed.GET("/tables",
				middleware.RequireCapability(services.CapManageTables),
				controllers.ListTables)
			authed.GET("/tables/:id",
				middleware.RequireCapability(services.CapManageTables),
				controllers.GetTable)
			authed.POST("/tables",
				middleware.RequireCapability(services.CapManageTables),
				controllers.CreateTable)
			authed.PUT("/tables/:id",
				middleware.RequireCapability(services.CapManageTables),
				controllers.UpdateTable)
			authed.PUT("/tables/:id/state",
				middleware.RequireCapability(services.CapManageTables),
				controllers.SetTableState)
			authed.DELETE("/tables/:id",
				middleware.RequireCapability(services.CapManageTables),
				controllers.DeleteTable)

			// Staff (admin)
			authed.GET("/staff",
				middleware.RequireCapability(services.CapManageStaff),
				controllers.ListStaff)
			authed.GET("/staff/:id",
				middleware.RequireCapability(services.CapManageStaff),
				controllers.GetStaff)
			authed.POST("/staff",
				middleware.RequireCapability(services.CapManageStaff),
				controllers.CreateStaff)
			authed.PUT("/staff/:id",
				middleware.RequireCapability(services.CapManageStaff),
				controllers.UpdateStaff)
			authed.DELETE("/staff/:id",
				middleware.RequireCapability(services.CapManageStaff),
				controllers.DeleteStaff)

			// Reports (admin)
			authed.GET("/reports/sales",
				middleware.RequireCapability(services.CapViewReports),
				controllers.GetSalesReport)
			authed.GET("/reports/sales/export",
				middleware.RequireCapability(services.CapViewReports),
				controllers.ExportSalesReport)
			authed.GET("/reports/dashboard",
				middleware.RequireCapability(services.CapViewReports),
				controllers.GetDashboard)

			// Kitchen live feed
			authed.GET("/ws/kitchen",
				middleware.RequireCapability(services.CapKitchenFeed),
				controllers.KitchenFeed)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "La Comanda API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
