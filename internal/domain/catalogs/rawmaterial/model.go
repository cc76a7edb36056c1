// Package rawmaterial provides the Raw Material catalog.
// Raw materials are the purchasable ingredients consumed by menu
// preparations and tracked in the allocation ledger.
package rawmaterial

import (
	"context"

	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/entity"
	"caterbase/internal/core/id"
)

// Category groups raw materials for purchasing and reporting.
type Category string

const (
	CategoryVegetable Category = "vegetable"
	CategoryGrocery   Category = "grocery"
	CategoryDairy     Category = "dairy"
	CategoryMeat      Category = "meat"
	CategoryOther     Category = "other"
)

// RawMaterial represents a raw material catalog row.
type RawMaterial struct {
	entity.Catalog

	// LocalName is the name in the agency's local language
	LocalName *string `db:"local_name" json:"localName,omitempty"`

	// SupportiveName is the name in the supportive language
	SupportiveName *string `db:"supportive_name" json:"supportiveName,omitempty"`

	// Category groups the material for purchasing
	Category Category `db:"category" json:"category"`

	// UnitID is the default measurement unit for this material
	UnitID id.ID `db:"unit_id" json:"unitId"`

	// PurchaseRate is the current purchase rate per unit
	PurchaseRate decimal.Decimal `db:"purchase_rate" json:"purchaseRate"`

	// SupplierRate marks materials priced by the supplier at delivery.
	// Allocation quantities for such materials are never split into
	// adjusted and extra parts.
	SupplierRate bool `db:"supplier_rate" json:"supplierRate"`

	// AdjustQuantity enables adjusted/extra splitting during allocation
	AdjustQuantity bool `db:"adjust_quantity" json:"adjustQuantity"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewRawMaterial creates a new RawMaterial with required fields.
func NewRawMaterial(code, name string, category Category, unitID id.ID) *RawMaterial {
	return &RawMaterial{
		Catalog:        entity.NewCatalog(code, name),
		Category:       category,
		UnitID:         unitID,
		AdjustQuantity: true,
	}
}

// Validate implements entity.Validatable interface.
func (r *RawMaterial) Validate(ctx context.Context) error {
	if err := r.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidCategory(r.Category) {
		return apperror.NewValidation("invalid raw material category").
			WithDetail("field", "category").
			WithDetail("value", string(r.Category))
	}

	if id.IsNil(r.UnitID) {
		return apperror.NewValidation("measurement unit is required").
			WithDetail("field", "unitId")
	}

	if r.PurchaseRate.IsNegative() {
		return apperror.NewValidation("purchase rate cannot be negative").
			WithDetail("field", "purchaseRate")
	}

	return nil
}

func isValidCategory(c Category) bool {
	switch c {
	case CategoryVegetable, CategoryGrocery, CategoryDairy, CategoryMeat, CategoryOther:
		return true
	}
	return false
}
