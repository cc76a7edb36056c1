package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/registers/allocation"
)

// --- Request DTOs ---

// AllocationChangeRequest is one allocation edit within a batch update.
type AllocationChangeRequest struct {
	OrderFunctionID           string          `json:"orderFunctionId" binding:"required"`
	MenuPreparationMenuItemID string          `json:"menuPreparationMenuItemId" binding:"required"`
	RawMaterialID             string          `json:"rawMaterialId" binding:"required"`
	Quantity                  decimal.Decimal `json:"quantity"`
	UnitID                    string          `json:"unitId" binding:"required"`
	AdjustQuantity            bool            `json:"adjustQuantity"`
	SupplierRate              bool            `json:"supplierRate"`
	GodownID                  *string         `json:"godownId"`
}

// ToChange converts the DTO to a domain change.
func (r *AllocationChangeRequest) ToChange() (allocation.Change, error) {
	var ch allocation.Change

	orderFunctionID, err := id.Parse(r.OrderFunctionID)
	if err != nil {
		return ch, apperror.NewValidation("invalid id format").WithDetail("field", "orderFunctionId")
	}
	menuItemID, err := id.Parse(r.MenuPreparationMenuItemID)
	if err != nil {
		return ch, apperror.NewValidation("invalid id format").WithDetail("field", "menuPreparationMenuItemId")
	}
	rawMaterialID, err := id.Parse(r.RawMaterialID)
	if err != nil {
		return ch, apperror.NewValidation("invalid id format").WithDetail("field", "rawMaterialId")
	}
	unitID, err := id.Parse(r.UnitID)
	if err != nil {
		return ch, apperror.NewValidation("invalid id format").WithDetail("field", "unitId")
	}
	godownID, err := parseOptionalID(r.GodownID, "godownId")
	if err != nil {
		return ch, err
	}

	return allocation.Change{
		OrderFunctionID:           orderFunctionID,
		MenuPreparationMenuItemID: menuItemID,
		RawMaterialID:             rawMaterialID,
		Quantity:                  r.Quantity,
		UnitID:                    unitID,
		AdjustQuantity:            r.AdjustQuantity,
		SupplierRate:              r.SupplierRate,
		GodownID:                  godownID,
	}, nil
}

// UpdateAllocationsRequest is the batch allocation update body.
type UpdateAllocationsRequest struct {
	Changes []AllocationChangeRequest `json:"changes" binding:"required,min=1"`
}

// SyncRawMaterialRequest re-derives a ledger row from the recipe.
type SyncRawMaterialRequest struct {
	OrderID                   string          `json:"orderId" binding:"required"`
	MenuPreparationMenuItemID string          `json:"menuPreparationMenuItemId" binding:"required"`
	MenuItemRawMaterialID     string          `json:"menuItemRawMaterialId" binding:"required"`
	RawMaterialID             string          `json:"rawMaterialId" binding:"required"`
	ActualQuantity            decimal.Decimal `json:"actualQuantity"`
	ActualMeasurementID       string          `json:"actualMeasurementId" binding:"required"`
	RawMaterialCategoryID     *string         `json:"rawMaterialCategoryId"`
	OrderTime                 *time.Time      `json:"orderTime"`
}

// ToInput converts the DTO to the domain sync input.
func (r *SyncRawMaterialRequest) ToInput() (allocation.SyncInput, error) {
	var in allocation.SyncInput

	orderID, err := id.Parse(r.OrderID)
	if err != nil {
		return in, apperror.NewValidation("invalid id format").WithDetail("field", "orderId")
	}
	menuItemID, err := id.Parse(r.MenuPreparationMenuItemID)
	if err != nil {
		return in, apperror.NewValidation("invalid id format").WithDetail("field", "menuPreparationMenuItemId")
	}
	recipeLineID, err := id.Parse(r.MenuItemRawMaterialID)
	if err != nil {
		return in, apperror.NewValidation("invalid id format").WithDetail("field", "menuItemRawMaterialId")
	}
	rawMaterialID, err := id.Parse(r.RawMaterialID)
	if err != nil {
		return in, apperror.NewValidation("invalid id format").WithDetail("field", "rawMaterialId")
	}
	measurementID, err := id.Parse(r.ActualMeasurementID)
	if err != nil {
		return in, apperror.NewValidation("invalid id format").WithDetail("field", "actualMeasurementId")
	}
	categoryID, err := parseOptionalID(r.RawMaterialCategoryID, "rawMaterialCategoryId")
	if err != nil {
		return in, err
	}

	return allocation.SyncInput{
		OrderID:                   orderID,
		MenuPreparationMenuItemID: menuItemID,
		MenuItemRawMaterialID:     recipeLineID,
		RawMaterialID:             rawMaterialID,
		ActualQuantity:            r.ActualQuantity,
		ActualMeasurementID:       measurementID,
		RawMaterialCategoryID:     categoryID,
		OrderTime:                 r.OrderTime,
	}, nil
}

// AgencyLineRequest distributes an allocated quantity to one agency.
type AgencyLineRequest struct {
	AgencyID                  string          `json:"agencyId" binding:"required"`
	OrderFunctionID           string          `json:"orderFunctionId" binding:"required"`
	MenuPreparationMenuItemID string          `json:"menuPreparationMenuItemId" binding:"required"`
	RawMaterialID             string          `json:"rawMaterialId" binding:"required"`
	Quantity                  decimal.Decimal `json:"quantity"`
	UnitID                    string          `json:"unitId" binding:"required"`
}

// ToLine converts the DTO to a domain agency line.
func (r *AgencyLineRequest) ToLine() (allocation.AgencyLine, error) {
	var line allocation.AgencyLine

	agencyID, err := id.Parse(r.AgencyID)
	if err != nil {
		return line, apperror.NewValidation("invalid id format").WithDetail("field", "agencyId")
	}
	orderFunctionID, err := id.Parse(r.OrderFunctionID)
	if err != nil {
		return line, apperror.NewValidation("invalid id format").WithDetail("field", "orderFunctionId")
	}
	menuItemID, err := id.Parse(r.MenuPreparationMenuItemID)
	if err != nil {
		return line, apperror.NewValidation("invalid id format").WithDetail("field", "menuPreparationMenuItemId")
	}
	rawMaterialID, err := id.Parse(r.RawMaterialID)
	if err != nil {
		return line, apperror.NewValidation("invalid id format").WithDetail("field", "rawMaterialId")
	}
	unitID, err := id.Parse(r.UnitID)
	if err != nil {
		return line, apperror.NewValidation("invalid id format").WithDetail("field", "unitId")
	}

	return allocation.AgencyLine{
		AgencyID:                  agencyID,
		OrderFunctionID:           orderFunctionID,
		MenuPreparationMenuItemID: menuItemID,
		RawMaterialID:             rawMaterialID,
		Quantity:                  r.Quantity,
		UnitID:                    unitID,
	}, nil
}

// AgencyAllocationRequest is the agency distribution body.
type AgencyAllocationRequest struct {
	Lines []AgencyLineRequest `json:"lines" binding:"required,min=1"`
}

// --- Response DTOs ---

// AllocationResponse is the response body for one ledger row.
type AllocationResponse struct {
	BaseResponse

	OrderID                   string `json:"orderId"`
	OrderFunctionID           string `json:"orderFunctionId"`
	MenuPreparationMenuItemID string `json:"menuPreparationMenuItemId"`
	RawMaterialID             string `json:"rawMaterialId"`

	PlannedQuantity decimal.Decimal `json:"plannedQuantity"`
	PlannedUnitID   string          `json:"plannedUnitId"`
	ActualQuantity  decimal.Decimal `json:"actualQuantity"`
	ActualUnitID    string          `json:"actualUnitId"`

	RawMaterialCategoryID *string    `json:"rawMaterialCategoryId,omitempty"`
	OrderTime             *time.Time `json:"orderTime,omitempty"`
	GodownID              *string    `json:"godownId,omitempty"`
}

// FromAllocation creates response DTO from domain entity.
func FromAllocation(a *allocation.Allocation) *AllocationResponse {
	return &AllocationResponse{
		BaseResponse:              FromBaseDocument(a.BaseDocument),
		OrderID:                   a.OrderID.String(),
		OrderFunctionID:           a.OrderFunctionID.String(),
		MenuPreparationMenuItemID: a.MenuPreparationMenuItemID.String(),
		RawMaterialID:             a.RawMaterialID.String(),
		PlannedQuantity:           a.PlannedQuantity,
		PlannedUnitID:             a.PlannedUnitID.String(),
		ActualQuantity:            a.ActualQuantity,
		ActualUnitID:              a.ActualUnitID.String(),
		RawMaterialCategoryID:     idToString(a.RawMaterialCategoryID),
		OrderTime:                 a.OrderTime,
		GodownID:                  idToString(a.GodownID),
	}
}

// ChangeResultResponse reports one applied change.
type ChangeResultResponse struct {
	OrderFunctionID           string `json:"orderFunctionId"`
	MenuPreparationMenuItemID string `json:"menuPreparationMenuItemId"`
	RawMaterialID             string `json:"rawMaterialId"`
	AdjustedExtra             string `json:"adjustedExtra,omitempty"`
}

// FromChangeResult creates response DTO from a domain change result.
func FromChangeResult(res allocation.ChangeResult) ChangeResultResponse {
	return ChangeResultResponse{
		OrderFunctionID:           res.Key.OrderFunctionID.String(),
		MenuPreparationMenuItemID: res.Key.MenuPreparationMenuItemID.String(),
		RawMaterialID:             res.Key.RawMaterialID.String(),
		AdjustedExtra:             res.AdjustedExtra,
	}
}
