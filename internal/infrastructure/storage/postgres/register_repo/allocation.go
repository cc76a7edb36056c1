// Package register_repo provides PostgreSQL implementations for register repositories.
// In Database-per-Tenant architecture, TxManager is obtained from context.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/registers/allocation"
	"caterbase/internal/infrastructure/storage/postgres"
)

const allocationsTable = "reg_raw_material_allocations"

var allocationColumns = []string{
	"id", "deletion_mark", "version", "attributes",
	"created_at", "updated_at", "created_by", "updated_by",
	"order_id", "order_function_id", "menu_preparation_menu_item_id", "raw_material_id",
	"planned_quantity", "planned_unit_id",
	"actual_quantity", "actual_unit_id",
	"raw_material_category_id", "order_time", "godown_id",
}

// AllocationRepo implements allocation.Repository.
// In Database-per-Tenant architecture, TxManager is obtained from context.
type AllocationRepo struct {
	builder squirrel.StatementBuilderType
}

// NewAllocationRepo creates a new allocation ledger repository.
func NewAllocationRepo() *AllocationRepo {
	return &AllocationRepo{
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// getTxManager retrieves TxManager from context.
func (r *AllocationRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

// Upsert inserts or replaces the row identified by its composite key.
// The mutable columns win on conflict; created_at and created_by keep
// their original values.
func (r *AllocationRepo) Upsert(ctx context.Context, a *allocation.Allocation) error {
	data := postgres.StructToMap(a)

	filtered := make(map[string]any, len(allocationColumns))
	for _, col := range allocationColumns {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.builder.
		Insert(allocationsTable).
		SetMap(filtered).
		Suffix(`ON CONFLICT (order_id, order_function_id, menu_preparation_menu_item_id, raw_material_id)
			DO UPDATE SET
				planned_quantity = EXCLUDED.planned_quantity,
				planned_unit_id = EXCLUDED.planned_unit_id,
				actual_quantity = EXCLUDED.actual_quantity,
				actual_unit_id = EXCLUDED.actual_unit_id,
				raw_material_category_id = EXCLUDED.raw_material_category_id,
				order_time = EXCLUDED.order_time,
				godown_id = EXCLUDED.godown_id,
				deletion_mark = EXCLUDED.deletion_mark,
				attributes = EXCLUDED.attributes,
				version = EXCLUDED.version,
				updated_at = EXCLUDED.updated_at,
				updated_by = EXCLUDED.updated_by`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert allocation: %w", err)
	}

	return nil
}

// Get retrieves one row by composite key.
func (r *AllocationRepo) Get(ctx context.Context, key allocation.Key) (*allocation.Allocation, error) {
	q := r.builder.
		Select(allocationColumns...).
		From(allocationsTable).
		Where(squirrel.Eq{
			"order_id":                      key.OrderID,
			"order_function_id":             key.OrderFunctionID,
			"menu_preparation_menu_item_id": key.MenuPreparationMenuItemID,
			"raw_material_id":               key.RawMaterialID,
		}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var a allocation.Allocation
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewAllocationNotFound(key)
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}

	return &a, nil
}

// FindByOrderID returns all ledger rows of an order.
func (r *AllocationRepo) FindByOrderID(ctx context.Context, orderID id.ID) ([]*allocation.Allocation, error) {
	q := r.builder.
		Select(allocationColumns...).
		From(allocationsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("order_function_id", "menu_preparation_menu_item_id", "raw_material_id")

	return r.selectMany(ctx, q)
}

// FindByMenuPreparationMenuItemID returns rows for one menu item line.
func (r *AllocationRepo) FindByMenuPreparationMenuItemID(ctx context.Context, menuPrepMenuItemID id.ID) ([]*allocation.Allocation, error) {
	q := r.builder.
		Select(allocationColumns...).
		From(allocationsTable).
		Where(squirrel.Eq{"menu_preparation_menu_item_id": menuPrepMenuItemID}).
		OrderBy("raw_material_id")

	return r.selectMany(ctx, q)
}

// FindByMenuItemRawMaterial locates the row for a recipe line within an order.
func (r *AllocationRepo) FindByMenuItemRawMaterial(ctx context.Context, orderID, menuPrepMenuItemID, rawMaterialID id.ID) (*allocation.Allocation, error) {
	q := r.builder.
		Select(allocationColumns...).
		From(allocationsTable).
		Where(squirrel.Eq{
			"order_id":                      orderID,
			"menu_preparation_menu_item_id": menuPrepMenuItemID,
			"raw_material_id":               rawMaterialID,
		}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var a allocation.Allocation
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewAllocationNotFound(map[string]string{
				"orderId":                   orderID.String(),
				"menuPreparationMenuItemId": menuPrepMenuItemID.String(),
				"rawMaterialId":             rawMaterialID.String(),
			})
		}
		return nil, fmt.Errorf("find by menu item raw material: %w", err)
	}

	return &a, nil
}

// ExistsByGodownID reports whether any row draws from the godown.
func (r *AllocationRepo) ExistsByGodownID(ctx context.Context, godownID id.ID) (bool, error) {
	q := r.builder.
		Select("1").
		From(allocationsTable).
		Where(squirrel.Eq{"godown_id": godownID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	var one int
	err = querier.QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by godown: %w", err)
	}

	return true, nil
}

// DeleteByMenuPreparationMenuItemID removes rows when the owning menu
// item line is removed from the order.
func (r *AllocationRepo) DeleteByMenuPreparationMenuItemID(ctx context.Context, menuPrepMenuItemID id.ID) error {
	q := r.builder.
		Delete(allocationsTable).
		Where(squirrel.Eq{"menu_preparation_menu_item_id": menuPrepMenuItemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}

	return nil
}

func (r *AllocationRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*allocation.Allocation, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*allocation.Allocation
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select allocations: %w", err)
	}

	return items, nil
}

// Ensure interface compliance.
var _ allocation.Repository = (*AllocationRepo)(nil)
