package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/registers/allocation"
	"caterbase/internal/infrastructure/http/v1/dto"
)

// AllocationHandler handles allocation ledger endpoints.
type AllocationHandler struct {
	*BaseHandler
	service *allocation.Service
}

// NewAllocationHandler creates a new allocation handler.
func NewAllocationHandler(base *BaseHandler, service *allocation.Service) *AllocationHandler {
	return &AllocationHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Update handles PUT /registers/allocations/orders/:orderId.
// Batch edit: each change commits independently; per-record failures
// are reported alongside the applied results.
func (h *AllocationHandler) Update(c *gin.Context) {
	orderID, err := id.Parse(c.Param("orderId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("field", "orderId"))
		return
	}

	var req dto.UpdateAllocationsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	changes := make([]allocation.Change, 0, len(req.Changes))
	for _, changeReq := range req.Changes {
		change, err := changeReq.ToChange()
		if err != nil {
			h.Error(c, err)
			return
		}
		changes = append(changes, change)
	}

	results, err := h.service.Update(c.Request.Context(), orderID, changes)

	// A failure of the whole batch (no record was even attempted) is a
	// regular error response; only per-record failures get 207.
	var batchErr *allocation.BatchError
	if err != nil && !errors.As(err, &batchErr) {
		h.Error(c, err)
		return
	}

	applied := make([]dto.ChangeResultResponse, 0, len(results))
	for _, res := range results {
		applied = append(applied, dto.FromChangeResult(res))
	}

	var failures []string
	if batchErr != nil {
		for _, recordErr := range batchErr.Errors() {
			failures = append(failures, recordErr.Error())
		}
	}

	status := http.StatusOK
	if len(failures) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{
		"applied": applied,
		"errors":  failures,
	})
}

// Sync handles POST /registers/allocations/sync.
// Re-derives one ledger row from the current recipe definition.
func (h *AllocationHandler) Sync(c *gin.Context) {
	var req dto.SyncRawMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.SyncRawMaterial(c.Request.Context(), input); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "allocation synced")
}

// AgencyAllocation handles POST /registers/allocations/orders/:orderId/agency.
func (h *AllocationHandler) AgencyAllocation(c *gin.Context) {
	orderID, err := id.Parse(c.Param("orderId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("field", "orderId"))
		return
	}

	var req dto.AgencyAllocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lines := make([]allocation.AgencyLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		line, err := lineReq.ToLine()
		if err != nil {
			h.Error(c, err)
			return
		}
		lines = append(lines, line)
	}

	if err := h.service.AgencyAllocation(c.Request.Context(), orderID, lines); err != nil {
		var batchErr *allocation.BatchError
		if !errors.As(err, &batchErr) {
			h.Error(c, err)
			return
		}
		var failures []string
		for _, lineErr := range batchErr.Errors() {
			failures = append(failures, lineErr.Error())
		}
		c.JSON(http.StatusMultiStatus, gin.H{"errors": failures})
		return
	}

	h.Success(c, "agency allocation applied")
}

// ListByOrder handles GET /registers/allocations/orders/:orderId.
func (h *AllocationHandler) ListByOrder(c *gin.Context) {
	orderID, err := id.Parse(c.Param("orderId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("field", "orderId"))
		return
	}

	items, err := h.service.FindByOrderID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": toAllocationDTOs(items)})
}

// ListByMenuItem handles GET /registers/allocations/menu-items/:menuItemId.
func (h *AllocationHandler) ListByMenuItem(c *gin.Context) {
	menuItemID, err := id.Parse(c.Param("menuItemId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("field", "menuItemId"))
		return
	}

	items, err := h.service.FindByMenuPreparationMenuItemID(c.Request.Context(), menuItemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": toAllocationDTOs(items)})
}

// GodownInUse handles GET /registers/allocations/godowns/:godownId/in-use.
// Used before godown deletion to refuse removal of referenced stores.
func (h *AllocationHandler) GodownInUse(c *gin.Context) {
	godownID, err := id.Parse(c.Param("godownId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("field", "godownId"))
		return
	}

	inUse, err := h.service.ExistsByGodownID(c.Request.Context(), godownID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"inUse": inUse})
}

func toAllocationDTOs(items []*allocation.Allocation) []*dto.AllocationResponse {
	dtos := make([]*dto.AllocationResponse, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, dto.FromAllocation(item))
	}
	return dtos
}
