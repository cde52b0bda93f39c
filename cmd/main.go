package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"saudemart/internal/caching"
	"saudemart/internal/handlers"
	"saudemart/internal/jobs/background"
	"saudemart/internal/middleware"
	"saudemart/internal/repositories"
	"saudemart/internal/services"
	"saudemart/pkg/database"
)

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	// Create repositories
	voucherRepo := repositories.NewVoucherRepo(pool)
	saleRepo := repositories.NewSaleRepo(pool)
	quoteRepo := repositories.NewQuoteRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	providerRepo := repositories.NewProviderRepo(pool)
	serviceRepo := repositories.NewHealthServiceRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	refDataSvc := services.NewRefDataService(clientRepo, providerRepo, serviceRepo, cacheSvc)
	voucherSvc := services.NewVoucherService(voucherRepo)
	saleSvc := services.NewSaleService(saleRepo, refDataSvc)
	quoteSvc := services.NewQuoteService(quoteRepo, saleSvc, refDataSvc)
	orderSvc := services.NewOrderService(saleRepo, voucherRepo, voucherSvc)

	// Create handlers
	saleHandlers := handlers.NewSaleHandlers(saleSvc)
	quoteHandlers := handlers.NewQuoteHandlers(quoteSvc)
	voucherHandlers := handlers.NewVoucherHandlers(voucherSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	refDataHandlers := handlers.NewRefDataHandlers(refDataSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient)

	// Background jobs
	scheduler := background.NewJobScheduler(quoteRepo, voucherRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTMiddleware(jwtSecret))

	// Quote routes
	v1.GET("/quotes", quoteHandlers.ListQuotes)
	v1.POST("/quotes", quoteHandlers.CreateQuote)
	v1.GET("/quotes/:id", quoteHandlers.GetQuote)
	v1.POST("/quotes/:id/cancel", quoteHandlers.CancelQuote)
	v1.POST("/quotes/:id/convert", quoteHandlers.ConvertQuote)

	// Sale routes
	v1.GET("/sales", saleHandlers.ListSales)
	v1.POST("/sales", saleHandlers.CreateSale)
	v1.GET("/sales/:id", saleHandlers.GetSale)
	v1.POST("/sales/:id/cancel", orderHandlers.CancelOrder)
	v1.POST("/sales/:id/reverse", orderHandlers.MarkSaleReversed)

	// Voucher routes
	v1.GET("/vouchers/:id", voucherHandlers.GetVoucher)
	v1.GET("/vouchers/code/:code", voucherHandlers.GetVoucherByAuthCode)
	v1.GET("/vouchers/:id/related", orderHandlers.RelatedVouchers)
	v1.POST("/vouchers/:id/transition", voucherHandlers.TransitionVoucher)
	v1.POST("/vouchers/:id/reverse", orderHandlers.ReverseVoucher)
	v1.GET("/providers/:id/vouchers", voucherHandlers.ListVouchersByProvider)

	// Reference data routes
	v1.GET("/clients", refDataHandlers.ListClients)
	v1.GET("/providers", refDataHandlers.ListProviders)
	v1.GET("/services", refDataHandlers.ListHealthServices)
	v1.POST("/cache/refresh", refDataHandlers.RefreshCache)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	go func() {
		log.Printf("Saudemart server starting on port %d", port)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := scheduler.Stop(); err != nil {
		log.Printf("Failed to stop job scheduler: %v", err)
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Failed to close redis client: %v", err)
	}
}
