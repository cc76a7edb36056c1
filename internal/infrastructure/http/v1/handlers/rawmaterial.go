package handlers

import (
	"github.com/gin-gonic/gin"

	"caterbase/internal/domain/catalogs/rawmaterial"
	"caterbase/internal/infrastructure/http/v1/dto"
)

// RawMaterialHTTPHandler shortens the generic handler signature.
type RawMaterialHTTPHandler struct {
	*CatalogHandler[
		*rawmaterial.RawMaterial,
		dto.CreateRawMaterialRequest,
		dto.UpdateRawMaterialRequest,
	]
	service *rawmaterial.Service
}

// NewRawMaterialHandler creates a configured generic handler for raw
// materials plus the category listing endpoint.
func NewRawMaterialHandler(
	base *BaseHandler,
	service *rawmaterial.Service,
) *RawMaterialHTTPHandler {

	config := CatalogHandlerConfig[
		*rawmaterial.RawMaterial,
		dto.CreateRawMaterialRequest,
		dto.UpdateRawMaterialRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "raw material",

		MapCreateDTO: func(req dto.CreateRawMaterialRequest) (*rawmaterial.RawMaterial, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateRawMaterialRequest, existing *rawmaterial.RawMaterial) (*rawmaterial.RawMaterial, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(entity *rawmaterial.RawMaterial) any {
			return dto.FromRawMaterial(entity)
		},
	}

	return &RawMaterialHTTPHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListByCategory handles GET /catalog/raw-materials/category/:category.
func (h *RawMaterialHTTPHandler) ListByCategory(c *gin.Context) {
	category := rawmaterial.Category(c.Param("category"))

	items, err := h.service.ListByCategory(c.Request.Context(), category)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]*dto.RawMaterialResponse, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, dto.FromRawMaterial(item))
	}
	h.OK(c, gin.H{"items": dtos})
}
