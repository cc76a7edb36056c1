package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
)

func TestConvert(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name string
		qty  string
		from string
		to   string
		want string
	}{
		{"identity", "2.5", kgID.String(), kgID.String(), "2.5"},
		{"coarse to base", "2.5", kgID.String(), gmID.String(), "2500"},
		{"base to coarse", "500", gmID.String(), kgID.String(), "0.5"},
		{"volume coarse to base", "1.25", ltrID.String(), mlID.String(), "1250"},
		{"custom ratio to base", "2", pktID.String(), nosID.String(), "24"},
		{"base to custom ratio", "18", nosID.String(), pktID.String(), "1.5"},
		{"zero", "0", kgID.String(), gmID.String(), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(dec(tt.qty), id.MustParse(tt.from), id.MustParse(tt.to))
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "want %s, got %s", tt.want, got)
		})
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	c := testCatalog()

	for _, qty := range []string{"0", "0.001", "1", "2.345", "1000"} {
		forward, err := c.Convert(dec(qty), kgID, gmID)
		require.NoError(t, err)
		back, err := c.Convert(forward, gmID, kgID)
		require.NoError(t, err)
		assert.True(t, back.Equal(dec(qty)), "round trip %s -> %s", qty, back)
	}
}

func TestConvert_IncompatibleFamily(t *testing.T) {
	c := testCatalog()

	_, err := c.Convert(dec("5"), kgID, ltrID)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeIncompatibleUnitFamily))
}

func TestConvert_UnknownUnit(t *testing.T) {
	c := testCatalog()

	_, err := c.Convert(dec("5"), kgID, id.MustParse("99999999-9999-9999-9999-999999999999"))
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeUnknownMeasurement))
}

func TestConvert_NegativeQuantity(t *testing.T) {
	c := testCatalog()

	_, err := c.Convert(dec("-1"), kgID, gmID)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidQuantity))
}

func TestSmallestUnitID(t *testing.T) {
	c := testCatalog()

	smallest, err := c.SmallestUnitID(kgID)
	require.NoError(t, err)
	assert.Equal(t, gmID, smallest)

	// No finer counterpart: identity.
	smallest, err = c.SmallestUnitID(nosID)
	require.NoError(t, err)
	assert.Equal(t, nosID, smallest)
}

func TestSmallestValue(t *testing.T) {
	c := testCatalog()

	qty, unitID, err := c.SmallestValue(dec("2.5"), kgID)
	require.NoError(t, err)
	assert.Equal(t, gmID, unitID)
	assert.True(t, qty.Equal(dec("2500")))

	qty, unitID, err = c.SmallestValue(dec("7"), nosID)
	require.NoError(t, err)
	assert.Equal(t, nosID, unitID)
	assert.True(t, qty.Equal(dec("7")))
}
