// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caterbase/internal/core/tenant"
	"caterbase/internal/domain/catalogs/measurement"
	"caterbase/internal/domain/catalogs/rawmaterial"
	"caterbase/internal/domain/registers/allocation"
	"caterbase/internal/domain/reports"
	"caterbase/internal/infrastructure/http/v1/handlers"
	"caterbase/internal/infrastructure/http/v1/middleware"
	"caterbase/internal/infrastructure/storage/postgres/catalog_repo"
	"caterbase/internal/infrastructure/storage/postgres/register_repo"
	"caterbase/internal/infrastructure/storage/postgres/report_repo"
	"caterbase/pkg/logger"
	"caterbase/pkg/numerator"
)

// Roles allowed to mutate catalog and ledger data.
var writeRoles = []string{"admin", "manager"}

// RouterConfig holds router configuration for multi-tenant architecture.
type RouterConfig struct {
	// TenantManager manages database connections for all tenants
	TenantManager *tenant.Manager

	// MetaPool is connection to meta-database (for health checks)
	MetaPool *pgxpool.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator
}

// NewRouter creates and configures the Gin router for multi-tenant architecture.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// Prometheus scrape endpoint (no auth, no tenant required)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health endpoints (no auth, no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.MetaPool, cfg.TenantManager)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
		health.GET("/tenants", healthHandler.TenantsStats)
	}

	// API v1 - TenantDB runs first, then Auth
	v1 := router.Group("/api/v1")
	v1.Use(middleware.TenantDB(cfg.TenantManager)) // 1. Resolve tenant, get DB pool
	v1.Use(middleware.Auth(cfg.JWTValidator))      // 2. Validate JWT
	v1.Use(middleware.UserContext())               // 3. Add UserID to context for domain layer

	registerCatalogRoutes(v1)
	registerRegisterRoutes(v1)
	registerReportRoutes(v1)

	return router
}

// registerCatalogRoutes registers catalog endpoints.
// Repos and services are created once; the TxManager and pool are
// obtained from context per-request.
func registerCatalogRoutes(rg *gin.RouterGroup) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()
	num := numerator.NewFromContext()

	measurementRepo := catalog_repo.NewMeasurementRepo()
	measurementService := measurement.NewService(measurementRepo, num)
	rawMaterialRepo := catalog_repo.NewRawMaterialRepo()

	// --- MEASUREMENT UNITS ---
	{
		handler := handlers.NewMeasurementHandler(baseHandler, measurementService)
		group := catalogs.Group("/measurement-units")
		RegisterCatalogRoutes(group, handler, writeRoles...)
		group.GET("/by-symbol/:symbol", handler.GetBySymbol)
	}

	// --- RAW MATERIALS ---
	{
		service := rawmaterial.NewService(rawMaterialRepo, measurementRepo, num)
		handler := handlers.NewRawMaterialHandler(baseHandler, service)
		group := catalogs.Group("/raw-materials")
		RegisterCatalogRoutes(group, handler, writeRoles...)
		group.GET("/category/:category", handler.ListByCategory)
	}
}

// registerRegisterRoutes registers allocation ledger endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	measurementRepo := catalog_repo.NewMeasurementRepo()
	measurementService := measurement.NewService(measurementRepo, numerator.NewFromContext())

	repo := register_repo.NewAllocationRepo()
	service := allocation.NewService(repo, measurementService)
	handler := handlers.NewAllocationHandler(baseHandler, service)

	write := middleware.RequireRole(writeRoles...)

	allocations := registers.Group("/allocations")
	allocations.PUT("/orders/:orderId", write, handler.Update)
	allocations.POST("/orders/:orderId/agency", write, handler.AgencyAllocation)
	allocations.POST("/sync", write, handler.Sync)
	allocations.GET("/orders/:orderId", handler.ListByOrder)
	allocations.GET("/menu-items/:menuItemId", handler.ListByMenuItem)
	allocations.GET("/godowns/:godownId/in-use", handler.GodownInUse)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	measurementRepo := catalog_repo.NewMeasurementRepo()
	measurementService := measurement.NewService(measurementRepo, numerator.NewFromContext())

	reportRepo := report_repo.NewReportRepo()
	reportService := reports.NewService(reportRepo, measurementService)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	reportsGroup.GET("/raw-material-requirement", reportHandler.GetRequirement)
	reportsGroup.GET("/raw-material-requirement/export", reportHandler.ExportRequirement)
}
