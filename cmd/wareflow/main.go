package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/wareflow/wareflow/internal/app"
	"github.com/wareflow/wareflow/internal/dashboard"
	"github.com/wareflow/wareflow/internal/inventory"
	"github.com/wareflow/wareflow/internal/masterdata/locations"
	"github.com/wareflow/wareflow/internal/masterdata/products"
	"github.com/wareflow/wareflow/internal/masterdata/warehouses"
	"github.com/wareflow/wareflow/internal/observability"
	"github.com/wareflow/wareflow/internal/orders"
	"github.com/wareflow/wareflow/internal/platform/db"
	"github.com/wareflow/wareflow/internal/shared"
	"github.com/wareflow/wareflow/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	auditLogger := shared.NewAuditLogger(dbpool)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboardRepo, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	productRepo := products.NewRepository(dbpool)
	productService := products.NewService(productRepo).WithCacheInvalidator(dashboardService)
	productHandler := products.NewHandler(logger, productService)

	inventoryRepo := inventory.NewRepository(dbpool)
	inventoryService := inventory.NewService(inventoryRepo, auditLogger, inventory.ServiceConfig{
		AllowNegativeStock: cfg.AllowNegativeStock,
	}).WithCacheInvalidator(dashboardService)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	orderRepo := orders.NewRepository(dbpool)
	orderService := orders.NewService(orderRepo, auditLogger).WithCacheInvalidator(dashboardService)
	orderHandler := orders.NewHandler(logger, orderService)

	locationRepo := locations.NewRepository(dbpool)
	locationHandler := locations.NewHandler(logger, locations.NewService(locationRepo))

	warehouseRepo := warehouses.NewRepository(dbpool)
	warehouseHandler := warehouses.NewHandler(logger, warehouses.NewService(warehouseRepo))

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		ProductHandler:   productHandler,
		OrderHandler:     orderHandler,
		InventoryHandler: inventoryHandler,
		DashboardHandler: dashboardHandler,
		LocationHandler:  locationHandler,
		WarehouseHandler: warehouseHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
