// Package allocation provides the raw-material allocation ledger.
// One row records, per order/function/menu-item/raw-material, the
// quantity planned from the recipe and the quantity actually allocated.
package allocation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/entity"
	"caterbase/internal/core/id"
)

// Key is the composite identity of a ledger row.
type Key struct {
	OrderID                   id.ID
	OrderFunctionID           id.ID
	MenuPreparationMenuItemID id.ID
	RawMaterialID             id.ID
}

// Allocation is one ledger row.
type Allocation struct {
	entity.BaseDocument

	OrderID                   id.ID `db:"order_id" json:"orderId"`
	OrderFunctionID           id.ID `db:"order_function_id" json:"orderFunctionId"`
	MenuPreparationMenuItemID id.ID `db:"menu_preparation_menu_item_id" json:"menuPreparationMenuItemId"`
	RawMaterialID             id.ID `db:"raw_material_id" json:"rawMaterialId"`

	// PlannedQuantity is copied from the recipe at allocation time
	PlannedQuantity decimal.Decimal `db:"planned_quantity" json:"plannedQuantity"`
	PlannedUnitID   id.ID           `db:"planned_unit_id" json:"plannedUnitId"`

	// ActualQuantity is the currently allocated amount, mutable by
	// user edits, sync, or agency allocation
	ActualQuantity decimal.Decimal `db:"actual_quantity" json:"actualQuantity"`
	ActualUnitID   id.ID           `db:"actual_unit_id" json:"actualUnitId"`

	// Contextual attributes used by downstream costing
	RawMaterialCategoryID *id.ID     `db:"raw_material_category_id" json:"rawMaterialCategoryId,omitempty"`
	OrderTime             *time.Time `db:"order_time" json:"orderTime,omitempty"`

	// GodownID is the store the material is drawn from
	GodownID *id.ID `db:"godown_id" json:"godownId,omitempty"`
}

// NewAllocation creates a ledger row seeded from the recipe.
func NewAllocation(key Key, plannedQty decimal.Decimal, plannedUnitID id.ID) *Allocation {
	return &Allocation{
		BaseDocument:              entity.NewBaseDocument(),
		OrderID:                   key.OrderID,
		OrderFunctionID:           key.OrderFunctionID,
		MenuPreparationMenuItemID: key.MenuPreparationMenuItemID,
		RawMaterialID:             key.RawMaterialID,
		PlannedQuantity:           plannedQty,
		PlannedUnitID:             plannedUnitID,
		ActualQuantity:            plannedQty,
		ActualUnitID:              plannedUnitID,
	}
}

// Key returns the composite identity of the row.
func (a *Allocation) Key() Key {
	return Key{
		OrderID:                   a.OrderID,
		OrderFunctionID:           a.OrderFunctionID,
		MenuPreparationMenuItemID: a.MenuPreparationMenuItemID,
		RawMaterialID:             a.RawMaterialID,
	}
}

// Validate implements entity.Validatable interface.
func (a *Allocation) Validate(ctx context.Context) error {
	if id.IsNil(a.OrderID) {
		return apperror.NewValidation("order id is required").
			WithDetail("field", "orderId")
	}
	if id.IsNil(a.OrderFunctionID) {
		return apperror.NewValidation("order function id is required").
			WithDetail("field", "orderFunctionId")
	}
	if id.IsNil(a.MenuPreparationMenuItemID) {
		return apperror.NewValidation("menu preparation menu item id is required").
			WithDetail("field", "menuPreparationMenuItemId")
	}
	if id.IsNil(a.RawMaterialID) {
		return apperror.NewValidation("raw material id is required").
			WithDetail("field", "rawMaterialId")
	}
	if a.PlannedQuantity.IsNegative() {
		return apperror.NewInvalidQuantity(a.PlannedQuantity.String())
	}
	if a.ActualQuantity.IsNegative() {
		return apperror.NewInvalidQuantity(a.ActualQuantity.String())
	}
	if id.IsNil(a.ActualUnitID) {
		return apperror.NewValidation("actual unit id is required").
			WithDetail("field", "actualUnitId")
	}
	return nil
}

// --- Service inputs ---

// Change is one incoming allocation edit within a batch update.
type Change struct {
	OrderFunctionID           id.ID           `json:"orderFunctionId"`
	MenuPreparationMenuItemID id.ID           `json:"menuPreparationMenuItemId"`
	RawMaterialID             id.ID           `json:"rawMaterialId"`
	Quantity                  decimal.Decimal `json:"quantity"`
	UnitID                    id.ID           `json:"unitId"`

	// AdjustQuantity requests adjusted/extra splitting of the quantity
	AdjustQuantity bool `json:"adjustQuantity"`

	// SupplierRate marks already-packaged supplier allocations that
	// must not be split
	SupplierRate bool `json:"supplierRate"`

	GodownID *id.ID `json:"godownId,omitempty"`
}

// ChangeResult reports the outcome of one applied change.
type ChangeResult struct {
	Key Key `json:"key"`

	// AdjustedExtra is the encoded adjusted/extra pair produced by the
	// split, in "qty|unit|qty|unit" form
	AdjustedExtra string `json:"adjustedExtra"`
}

// SyncInput re-derives a ledger row from the current recipe definition.
type SyncInput struct {
	OrderID                   id.ID           `json:"orderId"`
	MenuPreparationMenuItemID id.ID           `json:"menuPreparationMenuItemId"`
	MenuItemRawMaterialID     id.ID           `json:"menuItemRawMaterialId"`
	RawMaterialID             id.ID           `json:"rawMaterialId"`
	ActualQuantity            decimal.Decimal `json:"actualQuantity"`
	ActualMeasurementID       id.ID           `json:"actualMeasurementId"`
	RawMaterialCategoryID     *id.ID          `json:"rawMaterialCategoryId,omitempty"`
	OrderTime                 *time.Time      `json:"orderTime,omitempty"`
}

// AgencyLine distributes an allocated quantity to one supplier/agency.
type AgencyLine struct {
	AgencyID                  id.ID           `json:"agencyId"`
	OrderFunctionID           id.ID           `json:"orderFunctionId"`
	MenuPreparationMenuItemID id.ID           `json:"menuPreparationMenuItemId"`
	RawMaterialID             id.ID           `json:"rawMaterialId"`
	Quantity                  decimal.Decimal `json:"quantity"`
	UnitID                    id.ID           `json:"unitId"`
}
