// Package main is the entry point for the Caterbase maintenance worker.
// Multi-tenant architecture: runs periodic ledger housekeeping for all
// active tenants.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"caterbase/internal/core/tenant"
	"caterbase/pkg/logger"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting caterbase multi-tenant worker")

	metaPool, err := pgxpool.New(ctx, mustEnv("META_DATABASE_URL"))
	if err != nil {
		log.Fatalw("failed to connect to meta database", "error", err)
	}
	defer metaPool.Close()

	registry := tenant.NewPostgresRegistry(metaPool)

	managerCfg := tenant.DefaultManagerConfig()
	managerCfg.DBUser = mustEnv("TENANT_DB_USER")
	managerCfg.DBPassword = mustEnv("TENANT_DB_PASSWORD")
	managerCfg.PoolIdleTimeout = 10 * time.Minute // Shorter for worker

	manager := tenant.NewManager(managerCfg, registry, log)
	defer manager.Close()

	worker := NewMultiTenantWorker(manager, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// MultiTenantWorker runs housekeeping jobs for all tenants.
type MultiTenantWorker struct {
	manager *tenant.Manager
	log     *logger.Logger
}

func NewMultiTenantWorker(manager *tenant.Manager, log *logger.Logger) *MultiTenantWorker {
	return &MultiTenantWorker{
		manager: manager,
		log:     log.WithComponent("worker"),
	}
}

// Run starts worker goroutines for all active tenants and keeps the
// set in sync with the registry.
func (w *MultiTenantWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	var wg sync.WaitGroup
	tenantContexts := make(map[string]context.CancelFunc) // tenant_id(UUID) -> cancel
	var mu sync.Mutex

	// Initial start
	w.refreshTenants(ctx, &wg, tenantContexts, &mu)

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			for _, cancel := range tenantContexts {
				cancel()
			}
			mu.Unlock()
			wg.Wait()
			return

		case <-ticker.C:
			w.refreshTenants(ctx, &wg, tenantContexts, &mu)
		}
	}
}

func (w *MultiTenantWorker) refreshTenants(ctx context.Context, wg *sync.WaitGroup, tenantContexts map[string]context.CancelFunc, mu *sync.Mutex) {
	tenants, err := w.manager.GetActiveTenants(ctx)
	if err != nil {
		w.log.Errorw("failed to get active tenants", "error", err)
		return
	}

	activeTenants := make(map[string]*tenant.Tenant, len(tenants))
	for _, t := range tenants {
		activeTenants[t.ID] = t
	}

	mu.Lock()
	defer mu.Unlock()

	for tenantID, cancel := range tenantContexts {
		if _, active := activeTenants[tenantID]; !active {
			cancel()
			delete(tenantContexts, tenantID)
			w.log.Infow("stopped worker for inactive tenant", "tenant_id", tenantID)
		}
	}

	for _, t := range tenants {
		if _, exists := tenantContexts[t.ID]; !exists {
			tenantCtx, tenantCancel := context.WithCancel(ctx)
			tenantContexts[t.ID] = tenantCancel

			wg.Add(1)
			go func(t *tenant.Tenant) {
				defer wg.Done()
				w.runTenantWorker(tenantCtx, t)
			}(t)

			w.log.Infow("started worker for tenant", "tenant_id", t.ID)
		}
	}
}

func (w *MultiTenantWorker) runTenantWorker(ctx context.Context, t *tenant.Tenant) {
	mp, err := w.manager.GetPool(ctx, t.ID)
	if err != nil {
		w.log.Errorw("failed to get pool for tenant", "tenant_id", t.ID, "error", err)
		return
	}

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Infow("stopping worker for tenant", "tenant_id", t.ID)
			return
		case <-ticker.C:
			w.purgeMarkedAllocations(ctx, mp.Pool(), t.ID)
			w.reportOrphanUnits(ctx, mp.Pool(), t.ID)
		}
	}
}

// purgeMarkedAllocations hard-deletes ledger rows that have carried a
// deletion mark for over 90 days.
func (w *MultiTenantWorker) purgeMarkedAllocations(ctx context.Context, pool *pgxpool.Pool, tenantID string) {
	result, err := pool.Exec(ctx, `
		DELETE FROM reg_raw_material_allocations
		WHERE deletion_mark AND updated_at < NOW() - INTERVAL '90 days'
	`)
	if err != nil {
		w.log.Errorw("failed to purge marked allocations", "tenant_id", tenantID, "error", err)
		return
	}

	if result.RowsAffected() > 0 {
		w.log.Infow("purged marked allocations", "tenant_id", tenantID, "count", result.RowsAffected())
	}
}

// reportOrphanUnits logs ledger rows whose unit reference points at a
// soft-deleted measurement unit. Such rows render blank in reports, so
// surfacing them early beats discovering them in a requirement export.
func (w *MultiTenantWorker) reportOrphanUnits(ctx context.Context, pool *pgxpool.Pool, tenantID string) {
	var count int64
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reg_raw_material_allocations a
		JOIN cat_measurement_units u ON a.actual_unit_id = u.id
		WHERE NOT a.deletion_mark AND u.deletion_mark
	`).Scan(&count)
	if err != nil {
		w.log.Errorw("failed to check orphan unit references", "tenant_id", tenantID, "error", err)
		return
	}

	if count > 0 {
		w.log.Warnw("allocations reference soft-deleted units", "tenant_id", tenantID, "count", count)
	}
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
