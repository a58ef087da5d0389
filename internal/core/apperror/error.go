// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes following domain-driven design
const (
	// Infrastructure errors (5xx)
	CodeInternal          = "INTERNAL_ERROR"
	CodeGenerationFailure = "GENERATION_FAILURE"

	// Validation errors (400)
	CodeValidation        = "VALIDATION_ERROR"
	CodeDateFormatInvalid = "DATE_FORMAT_INVALID"

	// Business rule violations (422)
	CodeNoActiveTemplate       = "NO_ACTIVE_TEMPLATE"
	CodeAmountOutOfRange       = "AMOUNT_OUT_OF_RANGE"
	CodeDocumentApproved       = "DOCUMENT_APPROVED"
	CodeUnbalancedEntry        = "UNBALANCED_ENTRY"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// Generic user-facing text for remote generation failures.
const generationUserMessage = "خطا در ارتباط با مدل هوش مصنوعی. لطفا دوباره تلاش کنید."

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a technical description in English, suitable for logs
	Message string `json:"message"`

	// UserMessage is the Persian text shown to the end user
	UserMessage string `json:"userMessage,omitempty"`

	// Details contains additional context (document ids, amounts, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// WithUserMessage overrides the user-facing text.
func (e *AppError) WithUserMessage(msg string) *AppError {
	e.UserMessage = msg
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:        CodeValidation,
		Message:     message,
		UserMessage: "اطلاعات ورودی معتبر نیست.",
		HTTPStatus:  http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:        CodeNotFound,
		Message:     fmt.Sprintf("%s not found", entity),
		UserMessage: "مورد درخواستی یافت نشد.",
		HTTPStatus:  http.StatusNotFound,
		Details:     map[string]any{"entity": entity, "id": id},
	}
}

// NewNoActiveTemplate is raised when a document has no active accounting rule.
func NewNoActiveTemplate(docID, docNo, docTypeDescription, warehouseName string) *AppError {
	return &AppError{
		Code:    CodeNoActiveTemplate,
		Message: fmt.Sprintf("no active accounting rule for document %s in warehouse %s", docNo, warehouseName),
		UserMessage: fmt.Sprintf("برای سند \"%s\" از انبار \"%s\" (شماره %s)، شابلون فعالی یافت نشد.",
			docTypeDescription, warehouseName, docNo),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"document_id":    docID,
			"doc_no":         docNo,
			"warehouse_name": warehouseName,
		},
	}
}

// NewAmountNotPositive is raised when a conversion amount is zero or negative.
func NewAmountNotPositive(requested string) *AppError {
	return &AppError{
		Code:        CodeAmountOutOfRange,
		Message:     "conversion amount must be greater than zero",
		UserMessage: "مبلغ تبدیل باید بیشتر از صفر باشد.",
		HTTPStatus:  http.StatusUnprocessableEntity,
		Details:     map[string]any{"requested": requested},
	}
}

// NewAmountExceedsRemaining is raised when a conversion amount is larger than what is left.
func NewAmountExceedsRemaining(requested, remaining string) *AppError {
	return &AppError{
		Code:        CodeAmountOutOfRange,
		Message:     "conversion amount exceeds remaining balance",
		UserMessage: fmt.Sprintf("مبلغ تبدیل نمی‌تواند از مبلغ باقیمانده (%s) بیشتر باشد.", remaining),
		HTTPStatus:  http.StatusUnprocessableEntity,
		Details:     map[string]any{"requested": requested, "remaining": remaining},
	}
}

// NewDateRequired is raised when a multi-document conversion omits the accounting date.
func NewDateRequired(docCount int) *AppError {
	return &AppError{
		Code:        CodeDateFormatInvalid,
		Message:     "accounting date is required when converting more than one document",
		UserMessage: "برای تبدیل چندین سند، وارد کردن تاریخ سند حسابداری الزامی است.",
		HTTPStatus:  http.StatusBadRequest,
		Details:     map[string]any{"document_count": docCount, "reason": "required"},
	}
}

// NewDateFormatInvalid is raised when the accounting date does not match YYYY/MM/DD.
func NewDateFormatInvalid(date string) *AppError {
	return &AppError{
		Code:        CodeDateFormatInvalid,
		Message:     "accounting date must match YYYY/MM/DD",
		UserMessage: "فرمت تاریخ صحیح نیست. لطفا از فرمت YYYY/MM/DD استفاده کنید (مثال: 1403/05/21).",
		HTTPStatus:  http.StatusBadRequest,
		Details:     map[string]any{"date": date, "reason": "format"},
	}
}

// NewGenerationFailure wraps any transport, parse or structure error of the remote model.
// The technical text stays in Message and Err; the user sees a generic retry hint.
func NewGenerationFailure(technical string, cause error) *AppError {
	return &AppError{
		Code:        CodeGenerationFailure,
		Message:     technical,
		UserMessage: generationUserMessage,
		HTTPStatus:  http.StatusBadGateway,
		Err:         cause,
	}
}

// NewUnbalancedEntry is raised when debit and credit totals disagree.
func NewUnbalancedEntry(totalDebit, totalCredit string) *AppError {
	return &AppError{
		Code:        CodeUnbalancedEntry,
		Message:     "total debit must equal total credit",
		UserMessage: "جمع ستون بدهکار و بستانکار باید برابر باشد.",
		HTTPStatus:  http.StatusUnprocessableEntity,
		Details:     map[string]any{"total_debit": totalDebit, "total_credit": totalCredit},
	}
}

// NewDocumentApproved is raised when modifying an approved accounting document.
func NewDocumentApproved(id string) *AppError {
	return &AppError{
		Code:        CodeDocumentApproved,
		Message:     "approved accounting documents cannot be modified",
		UserMessage: "سند تصویب شده قابل تغییر نیست.",
		HTTPStatus:  http.StatusUnprocessableEntity,
		Details:     map[string]any{"id": id},
	}
}

// NewConcurrentModification creates an optimistic locking error
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:        CodeConcurrentModification,
		Message:     "Record was modified by another user. Please refresh and try again.",
		UserMessage: "سند توسط عملیات دیگری تغییر کرده است. لطفا دوباره تلاش کنید.",
		HTTPStatus:  http.StatusConflict,
		Details:     map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:        CodeInternal,
		Message:     "Internal server error",
		UserMessage: "خطای داخلی سیستم.",
		HTTPStatus:  http.StatusInternalServerError,
		Err:         err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:        CodeUnauthorized,
		Message:     message,
		UserMessage: "لطفا وارد سیستم شوید.",
		HTTPStatus:  http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:        CodeForbidden,
		Message:     message,
		UserMessage: "شما دسترسی لازم برای این عملیات را ندارید.",
		HTTPStatus:  http.StatusForbidden,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsCode reports whether err carries the given AppError code.
func IsCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

// IsConcurrentModification checks if error is CodeConcurrentModification
func IsConcurrentModification(err error) bool {
	return IsCode(err, CodeConcurrentModification)
}
