package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"caja/internal/catalog"
	"caja/internal/config"
	"caja/internal/engine"
	"caja/internal/handlers"
	"caja/internal/logger"
	"caja/internal/middleware"
	"caja/internal/resolver"
	"caja/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding types (decimal amounts)
	validator.Init()

	// Load the transaction catalog
	cat, err := catalog.Load(appConfig.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load transaction catalog: %w", err)
	}

	// Central service clients
	rates := resolver.NewHTTPRateResolver(appConfig.RateServiceURL)
	prices := resolver.NewHTTPPriceResolver(appConfig.PriceServiceURL)

	// Build the session engine and seed one totalizer per definition
	eng := engine.New(cat, rates, prices, appConfig.BaseCurrency)
	if err := eng.SeedTotalizers(); err != nil {
		return fmt.Errorf("failed to seed totalizers: %w", err)
	}

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(appConfig)
	movementHandler := handlers.NewMovementHandler(eng)
	currencyHandler := handlers.NewCurrencyHandler(eng)
	totalizerHandler := handlers.NewTotalizerHandler(eng)
	catalogHandler := handlers.NewCatalogHandler(cat)
	rateHandler := handlers.NewRateHandler(rates, prices)
	adminHandler := handlers.NewAdminHandler(eng, appConfig)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/session", sessionHandler.Open)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.SessionAuth())

	// Movement routes
	movements := protected.Group("/movements")
	movements.POST("", movementHandler.Execute)
	movements.GET("", movementHandler.List)
	movements.GET("/:operation", movementHandler.Get)
	movements.POST("/:operation/reverse", movementHandler.Reverse)

	// Currency routes
	currencies := protected.Group("/currencies")
	currencies.POST("", currencyHandler.Register)
	currencies.GET("", currencyHandler.List)
	currencies.GET("/:code", currencyHandler.Get)

	// Totalizer routes
	totalizers := protected.Group("/totalizers")
	totalizers.GET("", totalizerHandler.List)
	totalizers.GET("/:code", totalizerHandler.Get)

	// Catalog routes
	catalogGroup := protected.Group("/catalog")
	catalogGroup.GET("", catalogHandler.ListTypes)
	catalogGroup.GET("/types", catalogHandler.ListTypes)
	catalogGroup.GET("/totalizers", catalogHandler.ListTotalizers)

	// Central service lookups
	protected.GET("/rates/:code", rateHandler.GetCurrencyInfo)
	protected.GET("/products/:code", rateHandler.GetProductInfo)

	// Session administration
	protected.POST("/export", adminHandler.Export)
	protected.POST("/reset", adminHandler.Reset)

	log.Infof("Starting caja teller server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
