package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateMeasurementRequest_LocalizedNames(t *testing.T) {
	req := CreateMeasurementRequest{
		Code:             "UNIT-001",
		Name:             "Kilogram",
		Symbol:           "Kg",
		LocalName:        strPtr("किलोग्राम"),
		SupportiveName:   strPtr("கிலோகிராம்"),
		LocalSymbol:      strPtr("किग्रा"),
		SupportiveSymbol: strPtr("கி.கி"),
		IsBase:           true,
	}

	m, err := req.ToEntity()
	require.NoError(t, err)
	assert.Equal(t, "Kilogram", m.Name)
	require.NotNil(t, m.LocalName)
	assert.Equal(t, "किलोग्राम", *m.LocalName)
	require.NotNil(t, m.SupportiveName)
	assert.Equal(t, "கிலோகிராம்", *m.SupportiveName)
	require.NotNil(t, m.LocalSymbol)
	assert.Equal(t, "किग्रा", *m.LocalSymbol)
	require.NotNil(t, m.SupportiveSymbol)
	assert.Equal(t, "கி.கி", *m.SupportiveSymbol)

	resp := FromMeasurement(m)
	assert.Equal(t, m.LocalName, resp.LocalName)
	assert.Equal(t, m.SupportiveName, resp.SupportiveName)
	assert.Equal(t, m.LocalSymbol, resp.LocalSymbol)
	assert.Equal(t, m.SupportiveSymbol, resp.SupportiveSymbol)
}

func TestUpdateMeasurementRequest_LocalizedNames(t *testing.T) {
	create := CreateMeasurementRequest{Code: "UNIT-001", Name: "Kilogram", Symbol: "Kg", IsBase: true}
	m, err := create.ToEntity()
	require.NoError(t, err)

	update := UpdateMeasurementRequest{
		Code:               "UNIT-001",
		Name:               "Kilogram",
		Symbol:             "Kg",
		LocalName:          strPtr("किलोग्राम"),
		SupportiveSymbol:   strPtr("கி.கி"),
		IsBase:             true,
		BaseUnitEquivalent: decimal.NewFromInt(1),
		DecimalLimitForQty: -1,
		Version:            1,
	}
	require.NoError(t, update.ApplyTo(m))

	require.NotNil(t, m.LocalName)
	assert.Equal(t, "किलोग्राम", *m.LocalName)
	assert.Nil(t, m.SupportiveName)
	require.NotNil(t, m.SupportiveSymbol)
	assert.Equal(t, "கி.கி", *m.SupportiveSymbol)
}

func TestCreateRawMaterialRequest_LocalizedNames(t *testing.T) {
	req := CreateRawMaterialRequest{
		Code:           "RM-001",
		Name:           "Onion",
		LocalName:      strPtr("प्याज"),
		SupportiveName: strPtr("வெங்காயம்"),
		Category:       "vegetable",
		UnitID:         "11111111-1111-1111-1111-111111111111",
	}

	m, err := req.ToEntity()
	require.NoError(t, err)
	require.NotNil(t, m.LocalName)
	assert.Equal(t, "प्याज", *m.LocalName)
	require.NotNil(t, m.SupportiveName)
	assert.Equal(t, "வெங்காயம்", *m.SupportiveName)

	resp := FromRawMaterial(m)
	assert.Equal(t, m.LocalName, resp.LocalName)
	assert.Equal(t, m.SupportiveName, resp.SupportiveName)
}
