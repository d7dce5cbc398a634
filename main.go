package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/camayank/startupvaluator/config"
	_ "github.com/camayank/startupvaluator/docs"
	"github.com/camayank/startupvaluator/internal/advisory"
	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/cache"
	"github.com/camayank/startupvaluator/internal/handlers"
	"github.com/camayank/startupvaluator/internal/middleware"
	"github.com/camayank/startupvaluator/internal/services"
	"github.com/camayank/startupvaluator/internal/taxonomy"
	"github.com/camayank/startupvaluator/internal/telemetry"
	"github.com/camayank/startupvaluator/internal/validation"
	"github.com/camayank/startupvaluator/internal/valuation"
)

// @title Startup Valuator API
// @version 1.0
// @description Valuation computation and dynamic validation for startup business profiles.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ConfigureLogging()

	// Background work (file watch, cache purge) stops with this context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, "startup-valuator", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	// Initialize benchmark store
	tax := taxonomy.Default()
	source, closeSource, err := services.OpenBenchmarkSource(ctx, cfg.BenchmarkSource, tax)
	if err != nil {
		log.Fatalf("Failed to open benchmark source: %v", err)
	}
	defer closeSource()

	store := benchmarks.NewStore(nil)
	reportCache := cache.NewReportCache(cfg.ReportCacheTTL)
	benchmarkSvc := services.NewBenchmarkService(store, source, tax, reportCache)
	if _, err := benchmarkSvc.Reload(ctx); err != nil {
		log.Fatalf("Failed to load benchmarks: %v", err)
	}
	if err := benchmarkSvc.Watch(ctx); err != nil {
		log.Warnf("Benchmark hot reload disabled: %v", err)
	}
	go purgeReports(ctx, reportCache, cfg.ReportCacheTTL)

	// Optional advisory collaborator
	var advisor advisory.Advisor
	if cfg.AnthropicAPIKey != "" {
		a, err := advisory.NewAnthropicAdvisor(cfg.AnthropicAPIKey)
		if err != nil {
			log.Warnf("Advisory disabled: %v", err)
		} else {
			advisor = a
		}
	}

	// Initialize services
	resolver := validation.NewResolver(validation.DefaultTable(tax), tax)
	runner := valuation.NewRunner(valuation.DefaultRegistry(), cfg.MethodTimeout)
	valuationSvc := services.NewValuationService(store, resolver, runner, reportCache, advisor, services.ValuationOptions{
		ComputeTimeout:  cfg.ComputeTimeout,
		AdvisoryTimeout: cfg.AdvisoryTimeout,
	})

	// Initialize handlers
	valuationHandler := handlers.NewValuationHandler(valuationSvc)
	benchmarkHandler := handlers.NewBenchmarkHandler(benchmarkSvc)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"benchmark_version": store.Snapshot().Version,
			"rules_version":     resolver.Version(),
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Valuation routes
	router.POST("/valuations", valuationHandler.Compute)
	router.POST("/valuations/advice", valuationHandler.Advise)
	router.POST("/validations", valuationHandler.Validate)
	router.POST("/readiness", valuationHandler.Readiness)

	// Benchmark routes
	router.GET("/benchmarks", benchmarkHandler.Get)
	router.GET("/taxonomy", benchmarkHandler.Taxonomy)
	router.POST("/admin/benchmarks/reload", benchmarkHandler.Reload)
	router.POST("/admin/benchmarks/upload", benchmarkHandler.Upload)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	cancel()

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warnf("Failed to flush traces: %v", err)
	}

	fmt.Println("Server exited")
}

func purgeReports(ctx context.Context, reportCache *cache.ReportCache, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := reportCache.Purge(); n > 0 {
				log.Debugf("purged %d expired reports", n)
			}
		}
	}
}
