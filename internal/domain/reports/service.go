package reports

import (
	"context"
	"fmt"
	"time"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/measure"
	"caterbase/pkg/logger"
)

// SnapshotProvider supplies the unit catalog snapshot used to render
// compound quantity strings. Implemented by the measurement service.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*measure.Catalog, error)
}

// Service provides report generation operations.
type Service struct {
	repo  Repository
	units SnapshotProvider
}

// NewService creates a new reports service.
func NewService(repo Repository, units SnapshotProvider) *Service {
	return &Service{repo: repo, units: units}
}

// GetRequirementReport generates the raw-material requirement report.
// A line whose quantities cannot be aggregated renders with a blank
// total instead of failing the whole report.
func (s *Service) GetRequirementReport(ctx context.Context, filter RequirementReportFilter) (*RequirementReport, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate").
			WithDetail("field", "fromDate")
	}

	rows, err := s.repo.GetRequirementRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get requirement rows: %w", err)
	}

	snapshot, err := s.units.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := &RequirementReport{GeneratedAt: time.Now().UTC()}

	// Group per raw material, preserving the repository's name order.
	var order []id.ID
	grouped := make(map[id.ID][]RequirementRow)
	for _, row := range rows {
		if _, seen := grouped[row.RawMaterialID]; !seen {
			order = append(order, row.RawMaterialID)
		}
		grouped[row.RawMaterialID] = append(grouped[row.RawMaterialID], row)
	}

	// Pagination applies to materials, not ledger rows.
	if filter.Offset > 0 {
		if filter.Offset >= len(order) {
			order = nil
		} else {
			order = order[filter.Offset:]
		}
	}
	if len(order) > filter.Limit {
		order = order[:filter.Limit]
	}

	for _, materialID := range order {
		group := grouped[materialID]
		entries := make([]measure.Entry, 0, len(group))
		for _, row := range group {
			entries = append(entries, measure.Entry{
				RawMaterialID: row.RawMaterialID,
				Quantity:      row.Quantity,
				UnitID:        row.UnitID,
			})
		}

		item := RequirementReportItem{
			RawMaterialID:   materialID,
			RawMaterialName: group[0].RawMaterialName,
			Category:        group[0].Category,
			RowCount:        len(group),
		}

		total, err := snapshot.Aggregate(entries, nil)
		if err != nil {
			logger.Warn(ctx, "requirement line failed to aggregate",
				"raw_material_id", materialID,
				"error", err,
			)
			report.SkippedItems++
		} else {
			item.TotalQuantity = total
		}

		report.Items = append(report.Items, item)
	}

	report.TotalItems = len(report.Items)
	return report, nil
}
