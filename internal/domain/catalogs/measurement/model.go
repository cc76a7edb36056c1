// Package measurement provides the Measurement Unit catalog.
// Units form a flat base-unit graph: every derived unit references its
// family base directly, never through an intermediate unit.
package measurement

import (
	"context"

	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/entity"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/measure"
)

// AutoDecimalLimit is the sentinel for "auto" quantity rendering:
// 3 decimals when the value is fractional, none otherwise.
const AutoDecimalLimit = -1

// Measurement represents a measurement unit catalog row.
type Measurement struct {
	entity.Catalog

	// Symbol is the short display symbol (e.g., "Kg", "Gm", "Nos")
	Symbol string `db:"symbol" json:"symbol"`

	// LocalSymbol is the symbol in the agency's local language
	LocalSymbol *string `db:"local_symbol" json:"localSymbol,omitempty"`

	// SupportiveSymbol is the symbol in the supportive language
	SupportiveSymbol *string `db:"supportive_symbol" json:"supportiveSymbol,omitempty"`

	// LocalName is the name in the agency's local language
	LocalName *string `db:"local_name" json:"localName,omitempty"`

	// SupportiveName is the name in the supportive language
	SupportiveName *string `db:"supportive_name" json:"supportiveName,omitempty"`

	// IsBase marks the canonical reference unit of its family
	IsBase bool `db:"is_base" json:"isBase"`

	// BaseUnitID references the family base unit (nil for base units)
	BaseUnitID *id.ID `db:"base_unit_id" json:"baseUnitId,omitempty"`

	// BaseUnitEquivalent is the multiplier to the base unit:
	// quantity_in_base = quantity * baseUnitEquivalent
	BaseUnitEquivalent decimal.Decimal `db:"base_unit_equivalent" json:"baseUnitEquivalent"`

	// DecimalLimitForQty is the number of decimals for rendered
	// quantities. AutoDecimalLimit (-1) means auto.
	DecimalLimitForQty int `db:"decimal_limit_for_qty" json:"decimalLimitForQty"`

	// FractionalAware enables the auto decimal rule and the small-total
	// upgrade to the finer display unit during aggregation
	FractionalAware bool `db:"fractional_aware" json:"fractionalAware"`

	// SmallerUnitID is the conventional finer display unit (Kg -> Gm).
	// Always an explicit mapping, never derived.
	SmallerUnitID *id.ID `db:"smaller_unit_id" json:"smallerUnitId,omitempty"`
}

// NewMeasurement creates a new base measurement unit.
func NewMeasurement(code, name, symbol string) *Measurement {
	return &Measurement{
		Catalog:            entity.NewCatalog(code, name),
		Symbol:             symbol,
		IsBase:             true,
		BaseUnitEquivalent: decimal.NewFromInt(1),
		DecimalLimitForQty: AutoDecimalLimit,
	}
}

// NewDerivedMeasurement creates a unit expressed in terms of a base unit.
func NewDerivedMeasurement(code, name, symbol string, baseUnitID id.ID, equivalent decimal.Decimal) *Measurement {
	return &Measurement{
		Catalog:            entity.NewCatalog(code, name),
		Symbol:             symbol,
		BaseUnitID:         &baseUnitID,
		BaseUnitEquivalent: equivalent,
		DecimalLimitForQty: AutoDecimalLimit,
	}
}

// Validate implements entity.Validatable interface.
func (m *Measurement) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	if m.Symbol == "" {
		return apperror.NewValidation("symbol is required").
			WithDetail("field", "symbol")
	}

	if !m.BaseUnitEquivalent.IsPositive() {
		return apperror.NewValidation("base unit equivalent must be positive").
			WithDetail("field", "baseUnitEquivalent")
	}

	if m.IsBase {
		if m.BaseUnitID != nil && !id.IsNil(*m.BaseUnitID) {
			return apperror.NewValidation("base unit cannot reference another base unit").
				WithDetail("field", "baseUnitId")
		}
		if !m.BaseUnitEquivalent.Equal(decimal.NewFromInt(1)) {
			return apperror.NewValidation("base unit equivalent must be 1 for base units").
				WithDetail("field", "baseUnitEquivalent")
		}
	} else {
		if m.BaseUnitID == nil || id.IsNil(*m.BaseUnitID) {
			return apperror.NewValidation("derived unit requires a base unit reference").
				WithDetail("field", "baseUnitId")
		}
	}

	if m.DecimalLimitForQty < AutoDecimalLimit {
		return apperror.NewValidation("decimal limit must be -1 (auto) or non-negative").
			WithDetail("field", "decimalLimitForQty")
	}

	if m.SmallerUnitID != nil && *m.SmallerUnitID == m.ID {
		return apperror.NewValidation("smaller unit cannot reference itself").
			WithDetail("field", "smallerUnitId")
	}

	return nil
}

// EngineUnit maps the catalog row to the conversion engine's unit view.
func (m *Measurement) EngineUnit() measure.Unit {
	u := measure.Unit{
		ID:                 m.ID,
		Name:               m.Name,
		Symbol:             m.Symbol,
		IsBase:             m.IsBase,
		BaseUnitEquivalent: m.BaseUnitEquivalent,
		DecimalLimit:       m.DecimalLimitForQty,
		FractionalAware:    m.FractionalAware,
	}
	if m.IsBase {
		u.BaseUnitID = m.ID
	} else if m.BaseUnitID != nil {
		u.BaseUnitID = *m.BaseUnitID
	}
	if m.SmallerUnitID != nil {
		u.SmallerUnitID = *m.SmallerUnitID
	}
	return u
}
