// Package measure provides the measurement-unit normalization engine:
// unit conversion over a flat base-unit graph, compound quantity
// aggregation for reports, and adjusted/extra quantity splitting for
// raw-material allocation.
//
// The engine is stateless: every operation is a pure computation over an
// immutable Catalog snapshot loaded from the measurement catalog at
// request start.
package measure

import (
	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
)

// Unit is the engine's view of one measurement catalog row.
type Unit struct {
	ID     id.ID
	Name   string
	Symbol string

	// IsBase marks the canonical reference unit of its family
	// (gram for mass, millilitre for volume).
	IsBase bool

	// BaseUnitID references the family base unit; equals ID for base units.
	BaseUnitID id.ID

	// BaseUnitEquivalent is the multiplier to the base unit:
	// quantity_in_base = quantity * BaseUnitEquivalent.
	BaseUnitEquivalent decimal.Decimal

	// DecimalLimit is the number of decimals to render quantities with.
	// The sentinel -1 means "auto": 3 decimals when the value has a
	// fractional part, 0 otherwise.
	DecimalLimit int

	// FractionalAware enables the auto decimal rule and the small-total
	// upgrade to the finer display unit during aggregation.
	FractionalAware bool

	// SmallerUnitID is the conventional finer display unit (Kg -> Gm,
	// Ltr -> Ml). This is a domain convention kept as an explicit
	// mapping, never derived from BaseUnitEquivalent. Nil when the unit
	// has no finer counterpart.
	SmallerUnitID id.ID
}

// Catalog is an immutable snapshot of measurement unit definitions.
type Catalog struct {
	units map[id.ID]Unit
}

// NewCatalog builds a snapshot from catalog rows.
func NewCatalog(units []Unit) *Catalog {
	m := make(map[id.ID]Unit, len(units))
	for _, u := range units {
		m[u.ID] = u
	}
	return &Catalog{units: m}
}

// Unit returns the unit definition for an id.
func (c *Catalog) Unit(unitID id.ID) (Unit, error) {
	u, ok := c.units[unitID]
	if !ok {
		return Unit{}, apperror.NewUnknownMeasurement(unitID.String())
	}
	return u, nil
}

// Len returns the number of units in the snapshot.
func (c *Catalog) Len() int {
	return len(c.units)
}

// familyOf returns the family base unit id. The catalog is flat by
// design: a non-base unit references its base directly, never through
// an intermediate.
func (c *Catalog) familyOf(u Unit) id.ID {
	if u.IsBase {
		return u.ID
	}
	return u.BaseUnitID
}
