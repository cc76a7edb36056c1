package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caterbase/internal/core/apperror"
)

func TestSplitAdjusted(t *testing.T) {
	c := testCatalog()

	t.Run("no adjustment requested", func(t *testing.T) {
		got, err := c.SplitAdjusted(dec("2.5"), kgID, false, false)
		require.NoError(t, err)
		assert.True(t, got.AdjustedQuantity.Equal(dec("2.5")))
		assert.Equal(t, kgID, got.AdjustedUnitID)
		assert.True(t, got.ExtraQuantity.IsZero())
		assert.Equal(t, kgID, got.ExtraUnitID)
	})

	t.Run("supplier rate skips the split", func(t *testing.T) {
		got, err := c.SplitAdjusted(dec("2.5"), kgID, true, true)
		require.NoError(t, err)
		assert.True(t, got.AdjustedQuantity.Equal(dec("2.5")))
		assert.True(t, got.ExtraQuantity.IsZero())
	})

	t.Run("zero quantity", func(t *testing.T) {
		got, err := c.SplitAdjusted(dec("0"), gmID, true, false)
		require.NoError(t, err)
		assert.True(t, got.AdjustedQuantity.IsZero())
		assert.Equal(t, gmID, got.AdjustedUnitID)
		assert.True(t, got.ExtraQuantity.IsZero())
		assert.Equal(t, gmID, got.ExtraUnitID)
	})

	t.Run("split at finer granularity", func(t *testing.T) {
		got, err := c.SplitAdjusted(dec("2.0005"), kgID, true, false)
		require.NoError(t, err)
		assert.True(t, got.AdjustedQuantity.Equal(dec("2000")), "adjusted %s", got.AdjustedQuantity)
		assert.Equal(t, gmID, got.AdjustedUnitID)
		assert.True(t, got.ExtraQuantity.Equal(dec("0.5")), "extra %s", got.ExtraQuantity)
		assert.Equal(t, gmID, got.ExtraUnitID)
	})

	t.Run("clean quantity leaves no extra", func(t *testing.T) {
		got, err := c.SplitAdjusted(dec("1.25"), kgID, true, false)
		require.NoError(t, err)
		assert.True(t, got.AdjustedQuantity.Equal(dec("1250")))
		assert.True(t, got.ExtraQuantity.IsZero())
	})

	t.Run("unit without finer counterpart", func(t *testing.T) {
		got, err := c.SplitAdjusted(dec("7.5"), nosID, true, false)
		require.NoError(t, err)
		assert.True(t, got.AdjustedQuantity.Equal(dec("7")))
		assert.Equal(t, nosID, got.AdjustedUnitID)
		assert.True(t, got.ExtraQuantity.Equal(dec("0.5")))
		assert.Equal(t, nosID, got.ExtraUnitID)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := c.SplitAdjusted(dec("-0.5"), kgID, true, false)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidQuantity))
	})
}

// The split must conserve the requested quantity: adjusted + extra in
// base units equals the original in base units.
func TestSplitAdjusted_Conservation(t *testing.T) {
	c := testCatalog()

	for _, qty := range []string{"0", "0.2", "1", "2.0005", "3.999", "10.123456"} {
		got, err := c.SplitAdjusted(dec(qty), kgID, true, false)
		require.NoError(t, err)

		adjBase, err := c.Convert(got.AdjustedQuantity, got.AdjustedUnitID, gmID)
		require.NoError(t, err)
		extraBase, err := c.Convert(got.ExtraQuantity, got.ExtraUnitID, gmID)
		require.NoError(t, err)
		origBase, err := c.Convert(dec(qty), kgID, gmID)
		require.NoError(t, err)

		assert.True(t, adjBase.Add(extraBase).Equal(origBase),
			"qty %s: %s + %s != %s", qty, adjBase, extraBase, origBase)
	}
}

func TestAdjustedExtra_EncodeParse(t *testing.T) {
	c := testCatalog()

	original, err := c.SplitAdjusted(dec("2.0005"), kgID, true, false)
	require.NoError(t, err)

	encoded := original.Encode()
	parsed, err := ParseAdjustedExtra(encoded)
	require.NoError(t, err)

	assert.True(t, parsed.AdjustedQuantity.Equal(original.AdjustedQuantity))
	assert.Equal(t, original.AdjustedUnitID, parsed.AdjustedUnitID)
	assert.True(t, parsed.ExtraQuantity.Equal(original.ExtraQuantity))
	assert.Equal(t, original.ExtraUnitID, parsed.ExtraUnitID)
}

func TestParseAdjustedExtra_Malformed(t *testing.T) {
	_, err := ParseAdjustedExtra("1|2|3")
	require.Error(t, err)

	_, err = ParseAdjustedExtra("abc|not-a-uuid|0|also-not")
	require.Error(t, err)
}
