package dto

import (
	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/entity"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/catalogs/measurement"
)

// --- Request DTOs ---

// CreateMeasurementRequest is the request body for creating a measurement unit.
type CreateMeasurementRequest struct {
	Code               string            `json:"code"`
	Name               string            `json:"name" binding:"required"`
	Symbol             string            `json:"symbol" binding:"required"`
	LocalName          *string           `json:"localName"`
	SupportiveName     *string           `json:"supportiveName"`
	LocalSymbol        *string           `json:"localSymbol"`
	SupportiveSymbol   *string           `json:"supportiveSymbol"`
	IsBase             bool              `json:"isBase"`
	BaseUnitID         *string           `json:"baseUnitId"`
	BaseUnitEquivalent decimal.Decimal   `json:"baseUnitEquivalent"`
	DecimalLimitForQty *int              `json:"decimalLimitForQty"`
	FractionalAware    bool              `json:"fractionalAware"`
	SmallerUnitID      *string           `json:"smallerUnitId"`
	Attributes         entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMeasurementRequest) ToEntity() (*measurement.Measurement, error) {
	m := measurement.NewMeasurement(r.Code, r.Name, r.Symbol)
	m.LocalName = r.LocalName
	m.SupportiveName = r.SupportiveName
	m.LocalSymbol = r.LocalSymbol
	m.SupportiveSymbol = r.SupportiveSymbol
	m.IsBase = r.IsBase
	m.FractionalAware = r.FractionalAware
	m.Attributes = r.Attributes

	if !r.BaseUnitEquivalent.IsZero() {
		m.BaseUnitEquivalent = r.BaseUnitEquivalent
	}
	if r.DecimalLimitForQty != nil {
		m.DecimalLimitForQty = *r.DecimalLimitForQty
	}

	baseUnitID, err := parseOptionalID(r.BaseUnitID, "baseUnitId")
	if err != nil {
		return nil, err
	}
	m.BaseUnitID = baseUnitID

	smallerUnitID, err := parseOptionalID(r.SmallerUnitID, "smallerUnitId")
	if err != nil {
		return nil, err
	}
	m.SmallerUnitID = smallerUnitID

	return m, nil
}

// UpdateMeasurementRequest is the request body for updating a measurement unit.
type UpdateMeasurementRequest struct {
	Code               string            `json:"code"`
	Name               string            `json:"name" binding:"required"`
	Symbol             string            `json:"symbol" binding:"required"`
	LocalName          *string           `json:"localName"`
	SupportiveName     *string           `json:"supportiveName"`
	LocalSymbol        *string           `json:"localSymbol"`
	SupportiveSymbol   *string           `json:"supportiveSymbol"`
	IsBase             bool              `json:"isBase"`
	BaseUnitID         *string           `json:"baseUnitId"`
	BaseUnitEquivalent decimal.Decimal   `json:"baseUnitEquivalent"`
	DecimalLimitForQty int               `json:"decimalLimitForQty"`
	FractionalAware    bool              `json:"fractionalAware"`
	SmallerUnitID      *string           `json:"smallerUnitId"`
	Attributes         entity.Attributes `json:"attributes"`
	Version            int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateMeasurementRequest) ApplyTo(m *measurement.Measurement) error {
	m.Code = r.Code
	m.Name = r.Name
	m.Symbol = r.Symbol
	m.LocalName = r.LocalName
	m.SupportiveName = r.SupportiveName
	m.LocalSymbol = r.LocalSymbol
	m.SupportiveSymbol = r.SupportiveSymbol
	m.IsBase = r.IsBase
	m.BaseUnitEquivalent = r.BaseUnitEquivalent
	m.DecimalLimitForQty = r.DecimalLimitForQty
	m.FractionalAware = r.FractionalAware
	m.Attributes = r.Attributes
	m.Version = r.Version

	baseUnitID, err := parseOptionalID(r.BaseUnitID, "baseUnitId")
	if err != nil {
		return err
	}
	m.BaseUnitID = baseUnitID

	smallerUnitID, err := parseOptionalID(r.SmallerUnitID, "smallerUnitId")
	if err != nil {
		return err
	}
	m.SmallerUnitID = smallerUnitID

	return nil
}

// --- Response DTOs ---

// MeasurementResponse is the response body for a measurement unit.
type MeasurementResponse struct {
	ID                 string            `json:"id"`
	Code               string            `json:"code"`
	Name               string            `json:"name"`
	Symbol             string            `json:"symbol"`
	LocalName          *string           `json:"localName,omitempty"`
	SupportiveName     *string           `json:"supportiveName,omitempty"`
	LocalSymbol        *string           `json:"localSymbol,omitempty"`
	SupportiveSymbol   *string           `json:"supportiveSymbol,omitempty"`
	IsBase             bool              `json:"isBase"`
	BaseUnitID         *string           `json:"baseUnitId,omitempty"`
	BaseUnitEquivalent decimal.Decimal   `json:"baseUnitEquivalent"`
	DecimalLimitForQty int               `json:"decimalLimitForQty"`
	FractionalAware    bool              `json:"fractionalAware"`
	SmallerUnitID      *string           `json:"smallerUnitId,omitempty"`
	DeletionMark       bool              `json:"deletionMark"`
	Version            int               `json:"version"`
	Attributes         entity.Attributes `json:"attributes,omitempty"`
}

// FromMeasurement creates response DTO from domain entity.
func FromMeasurement(m *measurement.Measurement) *MeasurementResponse {
	return &MeasurementResponse{
		ID:                 m.ID.String(),
		Code:               m.Code,
		Name:               m.Name,
		Symbol:             m.Symbol,
		LocalName:          m.LocalName,
		SupportiveName:     m.SupportiveName,
		LocalSymbol:        m.LocalSymbol,
		SupportiveSymbol:   m.SupportiveSymbol,
		IsBase:             m.IsBase,
		BaseUnitID:         idToString(m.BaseUnitID),
		BaseUnitEquivalent: m.BaseUnitEquivalent,
		DecimalLimitForQty: m.DecimalLimitForQty,
		FractionalAware:    m.FractionalAware,
		SmallerUnitID:      idToString(m.SmallerUnitID),
		DeletionMark:       m.DeletionMark,
		Version:            m.Version,
		Attributes:         m.Attributes,
	}
}

// --- Helpers shared by catalog DTOs ---

func parseOptionalID(raw *string, field string) (*id.ID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*raw)
	if err != nil {
		return nil, apperror.NewValidation("invalid id format").WithDetail("field", field)
	}
	return &parsed, nil
}

func idToString(v *id.ID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
