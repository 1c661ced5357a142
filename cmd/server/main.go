// Package main is the entry point for the kardex inventory ledger server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kardex/internal/core/refgen"
	"kardex/internal/domain/inventory"
	"kardex/internal/domain/products"
	"kardex/internal/domain/purchases"
	"kardex/internal/domain/replenishments"
	"kardex/internal/domain/reports"
	"kardex/internal/domain/sales"
	v1 "kardex/internal/infrastructure/http/v1"
	"kardex/internal/infrastructure/storage/postgres"
	"kardex/internal/infrastructure/storage/postgres/ledger_repo"
	"kardex/internal/infrastructure/storage/postgres/report_repo"
	"kardex/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting kardex server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txOpts := postgres.DefaultTxOptions()
	txOpts.StatementTimeout = getEnvDuration("TX_STATEMENT_TIMEOUT", txOpts.StatementTimeout)
	txManager := postgres.NewTxManagerWithOptions(pool, txOpts)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Repositories ---
	purchaseRepo := ledger_repo.NewPurchaseRepo(txManager)
	productRepo := ledger_repo.NewProductRepo(txManager)
	lotRepo := ledger_repo.NewLotRepo(txManager)
	saleRepo := ledger_repo.NewSaleRepo(txManager)
	replenishmentRepo := ledger_repo.NewReplenishmentRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	// --- Services ---
	refs := refgen.New()
	productService := products.NewService(productRepo, refs)
	purchaseService := purchases.NewService(purchaseRepo, lotRepo, productService, refs, txManager)
	inventoryService := inventory.NewService(lotRepo, purchaseService, productService, txManager)
	saleService := sales.NewService(saleRepo, lotRepo, txManager)
	replenishmentService := replenishments.NewService(replenishmentRepo, lotRepo, refs, txManager)
	reportService := reports.NewService(reportRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		Purchases:      purchaseService,
		Inventory:      inventoryService,
		Sales:          saleService,
		Replenishments: replenishmentService,
		Products:       productService,
		Reports:        reportService,
		Auditor:        auditService,
		DB:             pool,
	})

	// --- HTTP Server ---
	addr := getEnv("HTTP_ADDR", ":8080")
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
