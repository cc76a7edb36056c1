package handlers

import (
	"github.com/gin-gonic/gin"

	"caterbase/internal/domain/catalogs/measurement"
	"caterbase/internal/infrastructure/http/v1/dto"
)

// MeasurementHTTPHandler shortens the generic handler signature.
type MeasurementHTTPHandler struct {
	*CatalogHandler[
		*measurement.Measurement,
		dto.CreateMeasurementRequest,
		dto.UpdateMeasurementRequest,
	]
	service *measurement.Service
}

// NewMeasurementHandler creates a configured generic handler for
// measurement units plus the symbol lookup endpoint.
func NewMeasurementHandler(
	base *BaseHandler,
	service *measurement.Service,
) *MeasurementHTTPHandler {

	config := CatalogHandlerConfig[
		*measurement.Measurement,
		dto.CreateMeasurementRequest,
		dto.UpdateMeasurementRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "measurement unit",

		MapCreateDTO: func(req dto.CreateMeasurementRequest) (*measurement.Measurement, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateMeasurementRequest, existing *measurement.Measurement) (*measurement.Measurement, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(entity *measurement.Measurement) any {
			return dto.FromMeasurement(entity)
		},
	}

	return &MeasurementHTTPHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// GetBySymbol handles GET /catalog/measurement-units/by-symbol/:symbol.
func (h *MeasurementHTTPHandler) GetBySymbol(c *gin.Context) {
	m, err := h.service.FindBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromMeasurement(m))
}
