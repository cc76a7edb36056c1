package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/catalogs/measurement"
	"caterbase/internal/infrastructure/storage/postgres"
)

const measurementTable = "cat_measurement_units"

// MeasurementRepo implements measurement.Repository.
type MeasurementRepo struct {
	*BaseCatalogRepo[*measurement.Measurement]
}

var _ measurement.Repository = (*MeasurementRepo)(nil)

// NewMeasurementRepo creates a new measurement unit repository.
func NewMeasurementRepo() *MeasurementRepo {
	return &MeasurementRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*measurement.Measurement](
			measurementTable,
			postgres.ExtractDBColumns[measurement.Measurement](),
			func() *measurement.Measurement { return &measurement.Measurement{} },
		),
	}
}

// FindBySymbol retrieves unit by symbol.
func (r *MeasurementRepo) FindBySymbol(ctx context.Context, symbol string) (*measurement.Measurement, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"symbol": symbol}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var m measurement.Measurement
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("measurement unit", symbol)
		}
		return nil, fmt.Errorf("find by symbol: %w", err)
	}

	return &m, nil
}

// ListActive returns all units without deletion mark, symbol order.
func (r *MeasurementRepo) ListActive(ctx context.Context) ([]*measurement.Measurement, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("symbol ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*measurement.Measurement
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list active: %w", err)
	}

	return items, nil
}

// IsReferenced reports whether other units point at the given unit as
// their base or smaller unit, or a raw material measures in it.
func (r *MeasurementRepo) IsReferenced(ctx context.Context, unitID id.ID) (bool, error) {
	bySibling := r.Builder().
		Select("1").
		From(measurementTable).
		Where(squirrel.Or{
			squirrel.Eq{"base_unit_id": unitID},
			squirrel.Eq{"smaller_unit_id": unitID},
		}).
		Where(squirrel.NotEq{"id": unitID}).
		Limit(1)

	referenced, err := r.queryExists(ctx, bySibling)
	if err != nil || referenced {
		return referenced, err
	}

	byMaterial := r.Builder().
		Select("1").
		From(rawMaterialTable).
		Where(squirrel.Eq{"unit_id": unitID}).
		Limit(1)

	return r.queryExists(ctx, byMaterial)
}
