// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"invacc/internal/core/apperror"
	"invacc/internal/domain"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// FromListResult converts a domain page, mapping every item.
func FromListResult[S, T any](r domain.ListResult[S], mapFn func(S) T) ListResponse[T] {
	items := make([]T, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, mapFn(it))
	}
	return ListResponse[T]{
		Items:      items,
		TotalCount: r.TotalCount,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}
}

// ItemsResponse wraps an unpaginated collection.
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// NewItemsResponse never renders a null items array.
func NewItemsResponse[T any](items []T) ItemsResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ItemsResponse[T]{Items: items}
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	UserMessage string         `json:"userMessage,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// FromError renders err for embedding in a partial-success payload.
// Errors other than AppError are reported as internal.
func FromError(err error) *ErrorResponse {
	if err == nil {
		return nil
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		appErr = apperror.NewInternal(err)
	}
	return &ErrorResponse{
		Code:        appErr.Code,
		Message:     appErr.Message,
		UserMessage: appErr.UserMessage,
		Details:     appErr.Details,
	}
}

// --- Batch ---

// BatchIDsRequest selects several records by id.
type BatchIDsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

// BatchItemResponse is the outcome of a batch operation for one id.
type BatchItemResponse struct {
	ID    string         `json:"id"`
	OK    bool           `json:"ok"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// BatchResponse reports per-id outcomes of a batch operation.
type BatchResponse struct {
	Items     []BatchItemResponse `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}
