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
	"github.com/mmarada/AI-portfolio/config"
	"github.com/mmarada/AI-portfolio/internal/advisor"
	"github.com/mmarada/AI-portfolio/internal/cache"
	"github.com/mmarada/AI-portfolio/internal/handlers"
	"github.com/mmarada/AI-portfolio/internal/marketdata"
	"github.com/mmarada/AI-portfolio/internal/middleware"
	"github.com/mmarada/AI-portfolio/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize the advisor client
	advisorClient, err := advisor.NewClient(ctx, cfg.GeminiAPIKey, advisor.WithModel(cfg.GeminiModel))
	if err != nil {
		log.Fatalf("Failed to create advisor client: %v", err)
	}

	// Initialize the price cache and simulators
	priceCache := cache.NewPriceCache()
	marketSim := marketdata.NewSimulator(priceCache)
	financials := marketdata.NewFinancialsGenerator(marketSim)
	performanceSim := marketdata.NewPerformanceSimulator()

	// Initialize services
	sandboxSvc := services.NewSandboxService(financials)
	advisorSvc := services.NewAdvisorService(advisorClient, sandboxSvc)
	refresher := services.NewMarketRefresher(sandboxSvc, marketSim, cfg.RefreshInterval)

	// Initialize handlers
	suggestionHandler := handlers.NewSuggestionHandler(advisorSvc)
	sandboxHandler := handlers.NewSandboxHandler(sandboxSvc, refresher)
	analysisHandler := handlers.NewAnalysisHandler(advisorSvc)
	marketHandler := handlers.NewMarketHandler(marketSim, performanceSim, sandboxSvc)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Suggestion routes
	router.POST("/suggestions", suggestionHandler.Suggest)

	// Sandbox session routes
	router.POST("/sessions", sandboxHandler.CreateSession)
	router.POST("/brokerage/link", sandboxHandler.LinkAccount)
	router.GET("/sessions/:id/portfolio", sandboxHandler.GetPortfolio)
	router.POST("/sessions/:id/assets", sandboxHandler.AddAsset)
	router.DELETE("/sessions/:id/assets/:ticker", sandboxHandler.RemoveAsset)
	router.DELETE("/sessions/:id", sandboxHandler.DeleteSession)

	// AI analysis routes
	router.GET("/sessions/:id/diversification", analysisHandler.Diversification)
	router.GET("/sessions/:id/analytics", analysisHandler.Analytics)
	router.GET("/sessions/:id/tax-loss", analysisHandler.TaxLoss)
	router.POST("/sessions/:id/optimize", analysisHandler.Optimize)

	// Market data routes
	router.GET("/market/quotes", marketHandler.Quotes)
	router.GET("/sessions/:id/performance", marketHandler.Performance)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
