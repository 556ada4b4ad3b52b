package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/dokon/backoffice/internal/application/catalog"
	financeapp "github.com/dokon/backoffice/internal/application/finance"
	inventoryapp "github.com/dokon/backoffice/internal/application/inventory"
	masterapp "github.com/dokon/backoffice/internal/application/master"
	saleapp "github.com/dokon/backoffice/internal/application/sale"
	settlementapp "github.com/dokon/backoffice/internal/application/settlement"
	"github.com/dokon/backoffice/internal/infrastructure/config"
	"github.com/dokon/backoffice/internal/infrastructure/logger"
	"github.com/dokon/backoffice/internal/infrastructure/persistence"
	"github.com/dokon/backoffice/internal/interfaces/http/handler"
	"github.com/dokon/backoffice/internal/interfaces/http/middleware"
	"github.com/dokon/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting backoffice server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	scope := persistence.NewGormTransactionScope(db.DB)

	settlementService := settlementapp.NewService(scope, log)
	saleService := saleapp.NewService(scope, log)
	masterService := masterapp.NewService(scope, log)
	financeService := financeapp.NewService(scope, log)
	inventoryService := inventoryapp.NewService(scope, log)
	catalogService := catalogapp.NewService(scope, log)

	financeHandler := handler.NewFinanceHandler(financeService)
	debtorHandler := handler.NewDebtorHandler(settlementService, financeHandler)
	saleHandler := handler.NewSaleHandler(saleService)
	masterHandler := handler.NewMasterHandler(masterService)
	stockHandler := handler.NewStockHandler(inventoryService)
	productHandler := handler.NewProductHandler(catalogService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	r := router.NewRouter(engine)
	r.Register(debtorHandler).
		Register(saleHandler).
		Register(masterHandler).
		Register(stockHandler).
		Register(productHandler).
		Register(financeHandler)
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
