package measure

import (
	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
)

// Convert converts a non-negative quantity between two units of the same
// family via the base-unit graph. Requesting a conversion across
// families is a programming error and fails loudly.
func (c *Catalog) Convert(qty decimal.Decimal, fromUnitID, toUnitID id.ID) (decimal.Decimal, error) {
	if qty.IsNegative() {
		return decimal.Zero, apperror.NewInvalidQuantity(qty.String())
	}

	from, err := c.Unit(fromUnitID)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := c.Unit(toUnitID)
	if err != nil {
		return decimal.Zero, err
	}

	if fromUnitID == toUnitID {
		return qty, nil
	}

	if c.familyOf(from) != c.familyOf(to) {
		return decimal.Zero, apperror.NewIncompatibleUnitFamily(fromUnitID.String(), toUnitID.String())
	}

	inBase := qty
	if !from.IsBase {
		inBase = qty.Mul(from.BaseUnitEquivalent)
	}

	if to.IsBase {
		return inBase, nil
	}
	return inBase.Div(to.BaseUnitEquivalent), nil
}

// SmallestUnitID returns the conventional finer display unit for a
// coarse unit, or the unit itself when no finer counterpart is defined.
func (c *Catalog) SmallestUnitID(unitID id.ID) (id.ID, error) {
	u, err := c.Unit(unitID)
	if err != nil {
		return id.Nil(), err
	}
	if id.IsNil(u.SmallerUnitID) {
		return u.ID, nil
	}
	return u.SmallerUnitID, nil
}

// SmallestValue returns the quantity re-expressed in the unit's
// conventional finer display unit, together with that unit's id.
// Identity when the unit has no finer counterpart.
func (c *Catalog) SmallestValue(qty decimal.Decimal, unitID id.ID) (decimal.Decimal, id.ID, error) {
	smallestID, err := c.SmallestUnitID(unitID)
	if err != nil {
		return decimal.Zero, id.Nil(), err
	}
	if smallestID == unitID {
		if qty.IsNegative() {
			return decimal.Zero, id.Nil(), apperror.NewInvalidQuantity(qty.String())
		}
		return qty, unitID, nil
	}

	converted, err := c.Convert(qty, unitID, smallestID)
	if err != nil {
		return decimal.Zero, id.Nil(), err
	}
	return converted, smallestID, nil
}
