package dto

import (
	"time"

	"caterbase/internal/core/id"
	"caterbase/internal/domain/reports"
)

// --- Requirement Report ---

// RequirementReportQuery binds the requirement report query string.
type RequirementReportQuery struct {
	FromDate       *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate         *time.Time `form:"toDate" time_format:"2006-01-02"`
	OrderIDs       []string   `form:"orderIds"`
	RawMaterialIDs []string   `form:"rawMaterialIds"`
	GodownID       *string    `form:"godownId"`
	Category       string     `form:"category"`
	Limit          int        `form:"limit"`
	Offset         int        `form:"offset"`
}

// ToFilter converts the query to the domain filter.
func (q *RequirementReportQuery) ToFilter() (reports.RequirementReportFilter, error) {
	filter := reports.RequirementReportFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		Category: q.Category,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}

	for _, raw := range q.OrderIDs {
		parsed, err := id.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.OrderIDs = append(filter.OrderIDs, parsed)
	}
	for _, raw := range q.RawMaterialIDs {
		parsed, err := id.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.RawMaterialIDs = append(filter.RawMaterialIDs, parsed)
	}

	godownID, err := parseOptionalID(q.GodownID, "godownId")
	if err != nil {
		return filter, err
	}
	filter.GodownID = godownID

	return filter, nil
}

// RequirementReportItemResponse is one aggregated report line.
type RequirementReportItemResponse struct {
	RawMaterialID   string `json:"rawMaterialId"`
	RawMaterialName string `json:"rawMaterialName"`
	Category        string `json:"category"`
	TotalQuantity   string `json:"totalQuantity"`
	RowCount        int    `json:"rowCount"`
}

// RequirementReportResponse is the full report body.
type RequirementReportResponse struct {
	GeneratedAt  time.Time                       `json:"generatedAt"`
	Items        []RequirementReportItemResponse `json:"items"`
	TotalItems   int                             `json:"totalItems"`
	SkippedItems int                             `json:"skippedItems"`
}

// FromRequirementReport creates response DTO from the domain report.
func FromRequirementReport(r *reports.RequirementReport) *RequirementReportResponse {
	items := make([]RequirementReportItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, RequirementReportItemResponse{
			RawMaterialID:   item.RawMaterialID.String(),
			RawMaterialName: item.RawMaterialName,
			Category:        item.Category,
			TotalQuantity:   item.TotalQuantity,
			RowCount:        item.RowCount,
		})
	}
	return &RequirementReportResponse{
		GeneratedAt:  r.GeneratedAt,
		Items:        items,
		TotalItems:   r.TotalItems,
		SkippedItems: r.SkippedItems,
	}
}
