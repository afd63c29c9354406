package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/quickbites/storefront/internal/catalog"
	"github.com/quickbites/storefront/internal/handlers"
	"github.com/quickbites/storefront/internal/metrics"
	"github.com/quickbites/storefront/internal/services"
	"github.com/quickbites/storefront/internal/store"
	"github.com/quickbites/storefront/pkg/helper"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	config := helper.LoadConfigFromEnv()
	gin.SetMode(config.GinMode)

	// Load the static catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Initialize stores. All state lives in memory for the lifetime of the
	// process; the stores are constructed once here and injected everywhere.
	reg := metrics.NewRegistry()
	cart := store.NewCartStore()
	favorites := store.NewFavoritesStore()
	history := store.NewSearchHistoryStore()
	orders := store.NewOrderStore(store.NewTimerScheduler(), reg)

	// Initialize services
	checkoutService := services.NewCheckoutService(cart, orders)

	// Initialize API handlers
	apiHandler := handlers.NewAPIHandler(cat, cart, favorites, history, orders, checkoutService, reg)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
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

	// Setup API routes
	apiHandler.SetupRoutes(router)

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Gracefully shutdown with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
