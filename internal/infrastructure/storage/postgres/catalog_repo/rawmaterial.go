package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"caterbase/internal/core/id"
	"caterbase/internal/domain/catalogs/rawmaterial"
	"caterbase/internal/infrastructure/storage/postgres"
)

const rawMaterialTable = "cat_raw_materials"

// RawMaterialRepo implements rawmaterial.Repository.
type RawMaterialRepo struct {
	*BaseCatalogRepo[*rawmaterial.RawMaterial]
}

var _ rawmaterial.Repository = (*RawMaterialRepo)(nil)

// NewRawMaterialRepo creates a new raw material repository.
func NewRawMaterialRepo() *RawMaterialRepo {
	return &RawMaterialRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*rawmaterial.RawMaterial](
			rawMaterialTable,
			postgres.ExtractDBColumns[rawmaterial.RawMaterial](),
			func() *rawmaterial.RawMaterial { return &rawmaterial.RawMaterial{} },
		),
	}
}

// ListByCategory returns active materials of one category, name order.
func (r *RawMaterialRepo) ListByCategory(ctx context.Context, category rawmaterial.Category) ([]*rawmaterial.RawMaterial, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"category": category}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*rawmaterial.RawMaterial
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by category: %w", err)
	}

	return items, nil
}

// IsAllocated reports whether the material appears in the allocation ledger.
func (r *RawMaterialRepo) IsAllocated(ctx context.Context, materialID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From("reg_raw_material_allocations").
		Where(squirrel.Eq{"raw_material_id": materialID}).
		Limit(1)

	return r.queryExists(ctx, q)
}
