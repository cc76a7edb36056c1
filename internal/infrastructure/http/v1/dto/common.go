// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"caterbase/internal/core/entity"
	"caterbase/internal/core/id"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Base DTOs ---

// BaseResponse contains common response fields.
type BaseResponse struct {
	ID           string            `json:"id"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// FromBaseCatalog creates BaseResponse from entity.BaseCatalog.
func FromBaseCatalog(b entity.BaseCatalog) BaseResponse {
	return BaseResponse{
		ID:           b.ID.String(),
		DeletionMark: b.DeletionMark,
		Version:      b.Version,
		Attributes:   b.Attributes,
	}
}

// FromBaseDocument creates BaseResponse from entity.BaseDocument.
func FromBaseDocument(b entity.BaseDocument) BaseResponse {
	return BaseResponse{
		ID:           b.ID.String(),
		DeletionMark: b.DeletionMark,
		Version:      b.Version,
		Attributes:   b.Attributes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Deletion ---

type SetDeletionMarkRequest struct {
	Marked bool `json:"marked"`
}
