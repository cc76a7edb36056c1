// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"caterbase/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; mutations require one of
// the given roles.
//
// Usage:
//
//	repo := catalog_repo.NewMeasurementRepo()
//	service := measurement.NewService(repo, num)
//	handler := handlers.NewMeasurementHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/measurement-units"), handler, "manager", "admin")
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, writeRoles ...string) {
	write := middleware.RequireRole(writeRoles...)

	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("", write, handler.Create)
	group.PUT("/:id", write, handler.Update)
	group.DELETE("/:id", write, handler.Delete)
	group.POST("/:id/deletion-mark", write, handler.SetDeletionMark)
}
