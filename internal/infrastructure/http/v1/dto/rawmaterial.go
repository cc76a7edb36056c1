package dto

import (
	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/entity"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/catalogs/rawmaterial"
)

// --- Request DTOs ---

// CreateRawMaterialRequest is the request body for creating a raw material.
type CreateRawMaterialRequest struct {
	Code           string               `json:"code"`
	Name           string               `json:"name" binding:"required"`
	LocalName      *string              `json:"localName"`
	SupportiveName *string              `json:"supportiveName"`
	Category       rawmaterial.Category `json:"category" binding:"required"`
	UnitID         string               `json:"unitId" binding:"required"`
	PurchaseRate   decimal.Decimal      `json:"purchaseRate"`
	SupplierRate   bool                 `json:"supplierRate"`
	AdjustQuantity *bool                `json:"adjustQuantity"`
	Description    *string              `json:"description"`
	Attributes     entity.Attributes    `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateRawMaterialRequest) ToEntity() (*rawmaterial.RawMaterial, error) {
	unitID, err := id.Parse(r.UnitID)
	if err != nil {
		return nil, apperror.NewValidation("invalid id format").WithDetail("field", "unitId")
	}

	m := rawmaterial.NewRawMaterial(r.Code, r.Name, r.Category, unitID)
	m.LocalName = r.LocalName
	m.SupportiveName = r.SupportiveName
	m.PurchaseRate = r.PurchaseRate
	m.SupplierRate = r.SupplierRate
	if r.AdjustQuantity != nil {
		m.AdjustQuantity = *r.AdjustQuantity
	}
	m.Description = r.Description
	m.Attributes = r.Attributes
	return m, nil
}

// UpdateRawMaterialRequest is the request body for updating a raw material.
type UpdateRawMaterialRequest struct {
	Code           string               `json:"code"`
	Name           string               `json:"name" binding:"required"`
	LocalName      *string              `json:"localName"`
	SupportiveName *string              `json:"supportiveName"`
	Category       rawmaterial.Category `json:"category" binding:"required"`
	UnitID         string               `json:"unitId" binding:"required"`
	PurchaseRate   decimal.Decimal      `json:"purchaseRate"`
	SupplierRate   bool                 `json:"supplierRate"`
	AdjustQuantity bool                 `json:"adjustQuantity"`
	Description    *string              `json:"description"`
	Attributes     entity.Attributes    `json:"attributes"`
	Version        int                  `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateRawMaterialRequest) ApplyTo(m *rawmaterial.RawMaterial) error {
	unitID, err := id.Parse(r.UnitID)
	if err != nil {
		return apperror.NewValidation("invalid id format").WithDetail("field", "unitId")
	}

	m.Code = r.Code
	m.Name = r.Name
	m.LocalName = r.LocalName
	m.SupportiveName = r.SupportiveName
	m.Category = r.Category
	m.UnitID = unitID
	m.PurchaseRate = r.PurchaseRate
	m.SupplierRate = r.SupplierRate
	m.AdjustQuantity = r.AdjustQuantity
	m.Description = r.Description
	m.Attributes = r.Attributes
	m.Version = r.Version
	return nil
}

// --- Response DTOs ---

// RawMaterialResponse is the response body for a raw material.
type RawMaterialResponse struct {
	ID             string               `json:"id"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	LocalName      *string              `json:"localName,omitempty"`
	SupportiveName *string              `json:"supportiveName,omitempty"`
	Category       rawmaterial.Category `json:"category"`
	UnitID         string               `json:"unitId"`
	PurchaseRate   decimal.Decimal      `json:"purchaseRate"`
	SupplierRate   bool                 `json:"supplierRate"`
	AdjustQuantity bool                 `json:"adjustQuantity"`
	Description    *string              `json:"description,omitempty"`
	DeletionMark   bool                 `json:"deletionMark"`
	Version        int                  `json:"version"`
	Attributes     entity.Attributes    `json:"attributes,omitempty"`
}

// FromRawMaterial creates response DTO from domain entity.
func FromRawMaterial(m *rawmaterial.RawMaterial) *RawMaterialResponse {
	return &RawMaterialResponse{
		ID:             m.ID.String(),
		Code:           m.Code,
		Name:           m.Name,
		LocalName:      m.LocalName,
		SupportiveName: m.SupportiveName,
		Category:       m.Category,
		UnitID:         m.UnitID.String(),
		PurchaseRate:   m.PurchaseRate,
		SupplierRate:   m.SupplierRate,
		AdjustQuantity: m.AdjustQuantity,
		Description:    m.Description,
		DeletionMark:   m.DeletionMark,
		Version:        m.Version,
		Attributes:     m.Attributes,
	}
}
