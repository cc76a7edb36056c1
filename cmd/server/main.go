// Package main is the entry point for the Caterbase API server.
// Multi-tenant architecture: Database-per-Tenant.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"caterbase/internal/config"
	"caterbase/internal/core/auth"
	"caterbase/internal/core/tenant"
	v1 "caterbase/internal/infrastructure/http/v1"
	"caterbase/pkg/logger"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting caterbase server (multi-tenant mode)")

	// --- Meta-database connection ---
	metaPool, err := pgxpool.New(ctx, cfg.Meta.DSN)
	if err != nil {
		log.Fatalw("failed to connect to meta database", "error", err)
	}
	defer metaPool.Close()

	if err := metaPool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping meta database", "error", err)
	}
	log.Info("meta database connection established")

	// --- Tenant Registry and Manager ---
	registry := tenant.NewPostgresRegistry(metaPool)

	managerCfg := tenant.DefaultManagerConfig()
	managerCfg.DBUser = cfg.Tenant.DBUser
	managerCfg.DBPassword = cfg.Tenant.DBPassword
	managerCfg.MaxConnsPerTenant = cfg.Tenant.MaxConnsPerTenant
	managerCfg.MinConnsPerTenant = cfg.Tenant.MinConnsPerTenant
	managerCfg.MaxTotalPools = cfg.Tenant.MaxTotalPools
	managerCfg.PoolIdleTimeout = cfg.Tenant.PoolIdleTimeout
	managerCfg.HealthCheckPeriod = cfg.Tenant.HealthCheckPeriod

	tenantManager := tenant.NewManager(managerCfg, registry, log)
	defer tenantManager.Close()

	log.Infow("tenant manager initialized",
		"max_pools", managerCfg.MaxTotalPools,
		"max_conns_per_tenant", managerCfg.MaxConnsPerTenant,
		"idle_timeout", managerCfg.PoolIdleTimeout,
	)

	// --- JWT Service ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWT.Secret)
	if cfg.JWT.AccessTokenTTL > 0 {
		jwtConfig.AccessTokenTTL = cfg.JWT.AccessTokenTTL
	}
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		TenantManager: tenantManager,
		MetaPool:      metaPool,
		Logger:        log,
		JWTValidator:  jwtService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr, "mode", "multi-tenant")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
