// Package report_repo provides PostgreSQL implementations for report repositories.
// In Database-per-Tenant architecture, TxManager is obtained from context.
package report_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"caterbase/internal/domain/reports"
	"caterbase/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
// In Database-per-Tenant architecture, TxManager is obtained from context.
type ReportRepo struct {
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo() *ReportRepo {
	return &ReportRepo{
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// getTxManager retrieves TxManager from context.
func (r *ReportRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

// GetRequirementRows returns per-allocation quantity rows joined with the
// raw material catalog. Rows of the same material stay adjacent because
// the aggregation layer groups them in order.
func (r *ReportRepo) GetRequirementRows(ctx context.Context, filter reports.RequirementReportFilter) ([]reports.RequirementRow, error) {
	query := `
		SELECT
			a.raw_material_id,
			rm.name as raw_material_name,
			rm.category,
			a.actual_quantity as quantity,
			a.actual_unit_id as unit_id
		FROM reg_raw_material_allocations a
		JOIN cat_raw_materials rm ON a.raw_material_id = rm.id
		WHERE a.deletion_mark = false
	`
	var args []any
	argIndex := 1

	if filter.FromDate != nil {
		query += fmt.Sprintf(" AND a.order_time >= $%d", argIndex)
		args = append(args, *filter.FromDate)
		argIndex++
	}
	if filter.ToDate != nil {
		query += fmt.Sprintf(" AND a.order_time < $%d", argIndex)
		args = append(args, *filter.ToDate)
		argIndex++
	}

	if len(filter.OrderIDs) > 0 {
		placeholders := make([]string, len(filter.OrderIDs))
		for i, orderID := range filter.OrderIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, orderID)
			argIndex++
		}
		query += fmt.Sprintf(" AND a.order_id IN (%s)", strings.Join(placeholders, ","))
	}

	if len(filter.RawMaterialIDs) > 0 {
		placeholders := make([]string, len(filter.RawMaterialIDs))
		for i, materialID := range filter.RawMaterialIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, materialID)
			argIndex++
		}
		query += fmt.Sprintf(" AND a.raw_material_id IN (%s)", strings.Join(placeholders, ","))
	}

	if filter.GodownID != nil {
		query += fmt.Sprintf(" AND a.godown_id = $%d", argIndex)
		args = append(args, *filter.GodownID)
		argIndex++
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND rm.category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	query += " ORDER BY rm.name, a.raw_material_id, a.actual_unit_id"

	var rows []reports.RequirementRow
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("requirement rows: %w", err)
	}

	return rows, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
