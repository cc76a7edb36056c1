package reports

import (
	"context"
)

// Repository defines report data access. Implementations run native SQL
// over the allocation ledger joined with catalogs.
type Repository interface {
	// GetRequirementRows returns per-allocation quantity rows matching
	// the filter, ordered by raw material name.
	GetRequirementRows(ctx context.Context, filter RequirementReportFilter) ([]RequirementRow, error)
}
