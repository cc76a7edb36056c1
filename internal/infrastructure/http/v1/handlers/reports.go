package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"caterbase/internal/core/apperror"
	"caterbase/internal/domain/reports"
	"caterbase/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetRequirement handles GET /reports/raw-material-requirement.
func (h *ReportsHandler) GetRequirement(c *gin.Context) {
	report, ok := h.buildRequirementReport(c)
	if !ok {
		return
	}

	h.OK(c, dto.FromRequirementReport(report))
}

// ExportRequirement handles GET /reports/raw-material-requirement/export.
// Streams the report as an XLSX workbook.
func (h *ReportsHandler) ExportRequirement(c *gin.Context) {
	report, ok := h.buildRequirementReport(c)
	if !ok {
		return
	}

	data, err := reports.ExportRequirementXLSX(report)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	filename := fmt.Sprintf("raw-material-requirement-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		data,
	)
}

func (h *ReportsHandler) buildRequirementReport(c *gin.Context) (*reports.RequirementReport, bool) {
	var query dto.RequirementReportQuery
	if !h.BindQuery(c, &query) {
		return nil, false
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid report filter").WithDetail("error", err.Error()))
		return nil, false
	}

	report, err := h.service.GetRequirementReport(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}

	return report, true
}
