package measure

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
)

// adjustedExtraSeparator delimits the four fields of the transport string.
const adjustedExtraSeparator = "|"

// AdjustedExtra is the result of splitting a requested quantity into a
// portion usable at the current allocation granularity and the
// remainder, each carrying its own unit.
//
// Invariant: adjusted + extra, both taken to base units, equal the
// original requested quantity in base units.
type AdjustedExtra struct {
	AdjustedQuantity decimal.Decimal
	AdjustedUnitID   id.ID
	ExtraQuantity    decimal.Decimal
	ExtraUnitID      id.ID
}

// Encode serializes the pair as "adjQty|adjUnitID|extraQty|extraUnitID".
// The caller persists the two pairs after splitting the string back.
func (ae AdjustedExtra) Encode() string {
	return strings.Join([]string{
		ae.AdjustedQuantity.String(),
		ae.AdjustedUnitID.String(),
		ae.ExtraQuantity.String(),
		ae.ExtraUnitID.String(),
	}, adjustedExtraSeparator)
}

// ParseAdjustedExtra decodes the transport string produced by Encode.
func ParseAdjustedExtra(s string) (AdjustedExtra, error) {
	parts := strings.Split(s, adjustedExtraSeparator)
	if len(parts) != 4 {
		return AdjustedExtra{}, apperror.NewValidation("malformed adjusted/extra string").
			WithDetail("value", s)
	}

	adjQty, err := decimal.NewFromString(parts[0])
	if err != nil {
		return AdjustedExtra{}, fmt.Errorf("parse adjusted quantity: %w", err)
	}
	adjUnit, err := id.Parse(parts[1])
	if err != nil {
		return AdjustedExtra{}, fmt.Errorf("parse adjusted unit id: %w", err)
	}
	extraQty, err := decimal.NewFromString(parts[2])
	if err != nil {
		return AdjustedExtra{}, fmt.Errorf("parse extra quantity: %w", err)
	}
	extraUnit, err := id.Parse(parts[3])
	if err != nil {
		return AdjustedExtra{}, fmt.Errorf("parse extra unit id: %w", err)
	}

	return AdjustedExtra{
		AdjustedQuantity: adjQty,
		AdjustedUnitID:   adjUnit,
		ExtraQuantity:    extraQty,
		ExtraUnitID:      extraUnit,
	}, nil
}

// SplitAdjusted splits a requested quantity into adjusted and extra
// portions expressed in the unit's conventional finer display unit.
//
// When adjust is false no split was requested; when supplierRate is true
// the quantity is taken as already packaged by the supplier and is not
// divided further. In both cases the full quantity comes back as the
// adjusted portion in the input unit.
func (c *Catalog) SplitAdjusted(qty decimal.Decimal, unitID id.ID, adjust, supplierRate bool) (AdjustedExtra, error) {
	if qty.IsNegative() {
		return AdjustedExtra{}, apperror.NewInvalidQuantity(qty.String())
	}
	if _, err := c.Unit(unitID); err != nil {
		return AdjustedExtra{}, err
	}

	if qty.IsZero() || !adjust || supplierRate {
		return AdjustedExtra{
			AdjustedQuantity: qty,
			AdjustedUnitID:   unitID,
			ExtraQuantity:    decimal.Zero,
			ExtraUnitID:      unitID,
		}, nil
	}

	smallQty, smallUnitID, err := c.SmallestValue(qty, unitID)
	if err != nil {
		return AdjustedExtra{}, err
	}

	whole := smallQty.Floor()
	return AdjustedExtra{
		AdjustedQuantity: whole,
		AdjustedUnitID:   smallUnitID,
		ExtraQuantity:    smallQty.Sub(whole),
		ExtraUnitID:      smallUnitID,
	}, nil
}
