// Package reports provides report generation services.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"caterbase/internal/core/id"
)

// --- Raw-Material Requirement Report ---

// RequirementReportFilter defines the filter for the requirement report.
type RequirementReportFilter struct {
	// Period over order time
	FromDate *time.Time
	ToDate   *time.Time

	// Filters
	OrderIDs       []id.ID
	RawMaterialIDs []id.ID
	GodownID       *id.ID
	Category       string

	// Pagination
	Limit  int
	Offset int
}

// RequirementRow is one per-allocation quantity row from storage.
type RequirementRow struct {
	RawMaterialID   id.ID           `db:"raw_material_id" json:"rawMaterialId"`
	RawMaterialName string          `db:"raw_material_name" json:"rawMaterialName"`
	Category        string          `db:"category" json:"category"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	UnitID          id.ID           `db:"unit_id" json:"unitId"`
}

// RequirementReportItem is one aggregated report line.
type RequirementReportItem struct {
	RawMaterialID   id.ID  `json:"rawMaterialId"`
	RawMaterialName string `json:"rawMaterialName"`
	Category        string `json:"category"`

	// TotalQuantity is the compound quantity string, e.g. "2 Kg, 500 Gm".
	// Blank when the material's rows could not be aggregated.
	TotalQuantity string `json:"totalQuantity"`

	// RowCount is the number of ledger rows behind this line
	RowCount int `json:"rowCount"`
}

// RequirementReport is the full raw-material requirement report.
type RequirementReport struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Items       []RequirementReportItem `json:"items"`
	TotalItems  int                     `json:"totalItems"`

	// SkippedItems counts lines rendered blank due to aggregation errors
	SkippedItems int `json:"skippedItems"`
}
