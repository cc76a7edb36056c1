package measure

import (
	"bytes"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
)

// Entry is one (quantity, unit) pair fed into aggregation, typically an
// allocation ledger row or a transfer detail line.
type Entry struct {
	RawMaterialID id.ID
	Quantity      decimal.Decimal
	UnitID        id.ID
}

var one = decimal.NewFromInt(1)

// Aggregate collapses a multiset of entries into a single human-readable
// compound quantity string, one segment per reporting unit
// (e.g. "2 Kg, 500 Gm").
//
// Entries are first summed per unit. A fractional-aware coarse unit
// whose total stays below 1 is re-expressed in its finer display unit
// and attributed to that unit's bucket. Zero buckets are dropped.
// Buckets render in unit-id order, so the output is byte-identical for
// identical input multisets. Empty input yields an empty string.
func (c *Catalog) Aggregate(entries []Entry, rawMaterialID *id.ID) (string, error) {
	sums := make(map[id.ID]decimal.Decimal)
	for _, e := range entries {
		if rawMaterialID != nil && e.RawMaterialID != *rawMaterialID {
			continue
		}
		if e.Quantity.IsNegative() {
			return "", apperror.NewInvalidQuantity(e.Quantity.String())
		}
		if _, err := c.Unit(e.UnitID); err != nil {
			return "", err
		}
		sums[e.UnitID] = sums[e.UnitID].Add(e.Quantity)
	}

	// Upgrade sub-unit totals of fractional-aware coarse units into the
	// finer display unit bucket.
	buckets := make(map[id.ID]decimal.Decimal, len(sums))
	for unitID, total := range sums {
		u, err := c.Unit(unitID)
		if err != nil {
			return "", err
		}
		if u.FractionalAware && !id.IsNil(u.SmallerUnitID) && total.LessThan(one) {
			finer, err := c.Convert(total, unitID, u.SmallerUnitID)
			if err != nil {
				return "", err
			}
			buckets[u.SmallerUnitID] = buckets[u.SmallerUnitID].Add(finer)
			continue
		}
		buckets[unitID] = buckets[unitID].Add(total)
	}

	unitIDs := make([]id.ID, 0, len(buckets))
	for unitID, total := range buckets {
		if total.IsZero() {
			continue
		}
		unitIDs = append(unitIDs, unitID)
	}
	sort.Slice(unitIDs, func(i, j int) bool {
		return bytes.Compare(unitIDs[i][:], unitIDs[j][:]) < 0
	})

	segments := make([]string, 0, len(unitIDs))
	for _, unitID := range unitIDs {
		u, err := c.Unit(unitID)
		if err != nil {
			return "", err
		}
		segments = append(segments, formatQuantity(buckets[unitID], u)+" "+u.Symbol)
	}

	return strings.Join(segments, ", "), nil
}

// formatQuantity renders a total under the unit's decimal rule. The -1
// sentinel means 3 decimals for fractional values, 0 otherwise.
func formatQuantity(qty decimal.Decimal, u Unit) string {
	limit := u.DecimalLimit
	if limit < 0 {
		if qty.Equal(qty.Truncate(0)) {
			limit = 0
		} else {
			limit = 3
		}
	}
	return qty.StringFixed(int32(limit))
}
