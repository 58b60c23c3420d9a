// Package main is the entry point for the storeboard API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storeboard/internal/config"
	"storeboard/internal/domain/auth"
	"storeboard/internal/domain/expense"
	"storeboard/internal/domain/inventory"
	v1 "storeboard/internal/infrastructure/http/v1"
	"storeboard/internal/infrastructure/http/v1/handlers"
	"storeboard/internal/infrastructure/integrator/youzan"
	"storeboard/internal/infrastructure/storage/postgres"
	"storeboard/pkg/logger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.App.Env == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting storeboard server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	statsTicker := time.NewTicker(time.Minute)
	defer statsTicker.Stop()
	go func() {
		for range statsTicker.C {
			pool.LogStats(ctx)
		}
	}()

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Inventory ledger ---
	inventoryStore := postgres.NewInventoryRepo(txManager, auditService)
	ledger := inventory.NewLedger(inventoryStore)
	if err := ledger.Load(ctx); err != nil {
		log.Fatalw("failed to load inventory ledger", "error", err)
	}

	// --- Expenses ---
	expenseService := expense.NewService(postgres.NewExpenseRepo(txManager))

	// --- Auth ---
	jwtConfig := auth.DefaultJWTConfig(cfg.Auth.Secret)
	if cfg.Auth.AccessTokenTTL > 0 {
		jwtConfig.AccessTokenTTL = cfg.Auth.AccessTokenTTL
	}
	jwtService := auth.NewJWTService(jwtConfig)
	authService := auth.NewService(postgres.NewUserRepo(txManager), jwtService, auth.DefaultServiceConfig())

	// --- Revenue source ---
	var revenueSource handlers.RevenueSource
	if cfg.Youzan.Enabled {
		youzanCfg := youzan.DefaultConfig(cfg.Youzan.ClientID, cfg.Youzan.ClientSecret)
		if cfg.Youzan.BaseURL != "" {
			youzanCfg.BaseURL = cfg.Youzan.BaseURL
		}
		revenueSource = youzan.NewClient(youzanCfg)
		log.Info("platform revenue source enabled")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool.Pool,
		Logger:         log,
		JWTValidator:   jwtService,
		AuthService:    authService,
		Ledger:         ledger,
		ExpenseService: expenseService,
		RevenueSource:  revenueSource,
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
