package measure

import (
	"github.com/shopspring/decimal"

	"caterbase/internal/core/id"
)

// Fixture units. Ids are chosen so bucket ordering in aggregation tests
// is predictable (Kg < Gm < Ltr < Ml < Nos < Pkt).
var (
	kgID  = id.MustParse("11111111-1111-1111-1111-111111111111")
	gmID  = id.MustParse("22222222-2222-2222-2222-222222222222")
	ltrID = id.MustParse("33333333-3333-3333-3333-333333333333")
	mlID  = id.MustParse("44444444-4444-4444-4444-444444444444")
	nosID = id.MustParse("55555555-5555-5555-5555-555555555555")
	pktID = id.MustParse("66666666-6666-6666-6666-666666666666")
)

func testCatalog() *Catalog {
	return NewCatalog([]Unit{
		{
			ID: gmID, Name: "Gram", Symbol: "Gm",
			IsBase: true, BaseUnitID: gmID,
			BaseUnitEquivalent: decimal.NewFromInt(1),
			DecimalLimit:       -1, FractionalAware: true,
		},
		{
			ID: kgID, Name: "Kilogram", Symbol: "Kg",
			BaseUnitID:         gmID,
			BaseUnitEquivalent: decimal.NewFromInt(1000),
			DecimalLimit:       -1, FractionalAware: true,
			SmallerUnitID: gmID,
		},
		{
			ID: mlID, Name: "Millilitre", Symbol: "Ml",
			IsBase: true, BaseUnitID: mlID,
			BaseUnitEquivalent: decimal.NewFromInt(1),
			DecimalLimit:       -1, FractionalAware: true,
		},
		{
			ID: ltrID, Name: "Litre", Symbol: "Ltr",
			BaseUnitID:         mlID,
			BaseUnitEquivalent: decimal.NewFromInt(1000),
			DecimalLimit:       -1, FractionalAware: true,
			SmallerUnitID: mlID,
		},
		{
			ID: nosID, Name: "Numbers", Symbol: "Nos",
			IsBase: true, BaseUnitID: nosID,
			BaseUnitEquivalent: decimal.NewFromInt(1),
			DecimalLimit:       0,
		},
		{
			// Custom ratio unit: one packet holds a dozen pieces.
			ID: pktID, Name: "Packet", Symbol: "Pkt",
			BaseUnitID:         nosID,
			BaseUnitEquivalent: decimal.NewFromInt(12),
			DecimalLimit:       0,
		},
	})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
