package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
)

func TestAggregate(t *testing.T) {
	c := testCatalog()
	material := id.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	tests := []struct {
		name    string
		entries []Entry
		want    string
	}{
		{
			name: "fractional total stays in coarse unit",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("0.3"), UnitID: kgID},
				{RawMaterialID: material, Quantity: dec("0.3"), UnitID: kgID},
				{RawMaterialID: material, Quantity: dec("0.5"), UnitID: kgID},
			},
			want: "1.100 Kg",
		},
		{
			name: "finer unit needs no upgrade",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("200"), UnitID: gmID},
				{RawMaterialID: material, Quantity: dec("300"), UnitID: gmID},
			},
			want: "500 Gm",
		},
		{
			name: "small coarse total upgrades to finer unit",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("0.5"), UnitID: kgID},
			},
			want: "500 Gm",
		},
		{
			name: "mixed units render per bucket",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("2"), UnitID: kgID},
				{RawMaterialID: material, Quantity: dec("500"), UnitID: gmID},
			},
			want: "2 Kg, 500 Gm",
		},
		{
			name: "upgraded remainder merges into existing finer bucket",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("0.5"), UnitID: kgID},
				{RawMaterialID: material, Quantity: dec("300"), UnitID: gmID},
			},
			want: "800 Gm",
		},
		{
			name: "integral total renders without decimals",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("2"), UnitID: kgID},
			},
			want: "2 Kg",
		},
		{
			name: "fractional value renders with three decimals",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("2.25"), UnitID: kgID},
			},
			want: "2.250 Kg",
		},
		{
			name: "count unit uses fixed decimal limit",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("7"), UnitID: nosID},
				{RawMaterialID: material, Quantity: dec("5"), UnitID: nosID},
			},
			want: "12 Nos",
		},
		{
			name: "zero bucket is dropped",
			entries: []Entry{
				{RawMaterialID: material, Quantity: dec("0"), UnitID: gmID},
				{RawMaterialID: material, Quantity: dec("1"), UnitID: nosID},
			},
			want: "1 Nos",
		},
		{
			name:    "empty input",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Aggregate(tt.entries, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate_FilterByRawMaterial(t *testing.T) {
	c := testCatalog()
	onion := id.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	paneer := id.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")

	entries := []Entry{
		{RawMaterialID: onion, Quantity: dec("2"), UnitID: kgID},
		{RawMaterialID: paneer, Quantity: dec("750"), UnitID: gmID},
		{RawMaterialID: onion, Quantity: dec("500"), UnitID: gmID},
	}

	got, err := c.Aggregate(entries, &onion)
	require.NoError(t, err)
	assert.Equal(t, "2 Kg, 500 Gm", got)

	got, err = c.Aggregate(entries, &paneer)
	require.NoError(t, err)
	assert.Equal(t, "750 Gm", got)
}

func TestAggregate_Deterministic(t *testing.T) {
	c := testCatalog()
	material := id.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	entries := []Entry{
		{RawMaterialID: material, Quantity: dec("1.5"), UnitID: ltrID},
		{RawMaterialID: material, Quantity: dec("2"), UnitID: kgID},
		{RawMaterialID: material, Quantity: dec("250"), UnitID: mlID},
	}

	first, err := c.Aggregate(entries, nil)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := c.Aggregate(entries, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAggregate_Errors(t *testing.T) {
	c := testCatalog()
	material := id.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	_, err := c.Aggregate([]Entry{
		{RawMaterialID: material, Quantity: dec("-1"), UnitID: kgID},
	}, nil)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidQuantity))

	_, err = c.Aggregate([]Entry{
		{RawMaterialID: material, Quantity: dec("1"), UnitID: id.MustParse("99999999-9999-9999-9999-999999999999")},
	}, nil)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeUnknownMeasurement))
}
