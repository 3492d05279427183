package main

import (
	"fmt"
	"net/http"
	"os"

	"hearth/internal/config"
	"hearth/internal/database"
	"hearth/internal/events"
	"hearth/internal/handlers"
	"hearth/internal/hlock"
	"hearth/internal/logger"
	"hearth/internal/middleware"
	"hearth/internal/services"
	"hearth/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "hearth/internal/docs" // Import swagger docs
)

// @title           Hearth API
// @version         1.0
// @description     Hearth is a shared household ledger: members post expenses, track pairwise debts, and settle up.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	var publisher *events.Publisher
	if appConfig.AMQPURL != "" {
		publisher, err = events.NewPublisher(appConfig.AMQPURL, appConfig.AMQPExchange, appConfig.AMQPQueue)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		defer publisher.Close()
	} else {
		log.Warn("AMQP_URL not set, ledger events disabled")
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	locks := hlock.NewRegistry()
	ticks := services.TickSource(services.DefaultTickSource)

	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	householdService := services.NewHouseholdService(db, locks, ticks)
	balanceService := services.NewBalanceService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, locks, ticks, balanceService, categoryService, publisher)
	settlementService := services.NewSettlementService(db, locks, ticks, balanceService, publisher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	householdHandler := handlers.NewHouseholdHandler(householdService, balanceService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, householdService, auditService)
	settlementHandler := handlers.NewSettlementHandler(settlementService, householdService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, householdService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Metrics())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/auth/me", authHandler.GetProfile)

	// Household routes
	households := protected.Group("/households")
	households.POST("", householdHandler.Create)
	households.GET("/:id", householdHandler.Get)
	households.DELETE("/:id", householdHandler.Deactivate)
	households.GET("/:id/members", householdHandler.ListMembers)
	households.POST("/:id/members", householdHandler.AddMember)
	households.DELETE("/:id/members/:userId", householdHandler.RemoveMember)
	households.PUT("/:id/members/:userId/allocation", householdHandler.UpdateMemberAllocation)

	// Balance routes
	households.GET("/:id/balances", householdHandler.ListBalances)
	households.GET("/:id/balance", householdHandler.GetBalance)

	// Expense routes
	households.POST("/:id/expenses", expenseHandler.Create)
	households.GET("/:id/expenses", expenseHandler.List)
	households.GET("/:id/expenses/:expenseId", expenseHandler.Get)
	households.GET("/:id/expenses/:expenseId/allocations", expenseHandler.GetAllocations)
	households.PUT("/:id/expenses/:expenseId/settled", expenseHandler.MarkSettled)

	// Settlement routes
	households.POST("/:id/settlements", settlementHandler.Create)
	households.GET("/:id/settlements", settlementHandler.List)
	households.GET("/:id/settlements/:settlementId", settlementHandler.Get)
	households.PUT("/:id/settlements/:settlementId/reference", settlementHandler.RecordReference)

	// Category routes
	households.POST("/:id/categories", categoryHandler.Create)
	households.GET("/:id/categories", categoryHandler.List)
	households.DELETE("/:id/categories/:categoryId", categoryHandler.Delete)

	log.Infof("Starting Hearth backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
