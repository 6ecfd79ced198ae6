// Package errors provides standardized error handling for the minutes service.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRecordNotFound     ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeRecordSaveFailed   ErrorCode = "RECORD_SAVE_FAILED"
	ErrCodeRecordQueryFailed  ErrorCode = "RECORD_QUERY_FAILED"
	ErrCodeRecordDeleteFailed ErrorCode = "RECORD_DELETE_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	ErrCodeDirectoryLoadFailed   ErrorCode = "DIRECTORY_LOAD_FAILED"
	ErrCodeDirectoryLookupFailed ErrorCode = "DIRECTORY_LOOKUP_FAILED"

	ErrCodeSnapshotInvalid ErrorCode = "SNAPSHOT_INVALID"
	ErrCodeExportFailed    ErrorCode = "EXPORT_FAILED"

	ErrCodeIndexingFailed ErrorCode = "INDEXING_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeUnauthorized   ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewRecordNotFoundError creates a non-retryable lookup error.
func NewRecordNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Record not found",
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordSaveFailedError creates a retryable persistence error.
func NewRecordSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordSaveFailed,
		Message:   "Failed to save record",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordQueryFailedError creates a retryable query error.
func NewRecordQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordQueryFailed,
		Message:   "Failed to query records",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordDeleteFailedError creates a retryable deletion error.
func NewRecordDeleteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordDeleteFailed,
		Message:   "Failed to delete records",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryLoadFailedError creates a non-retryable startup error.
func NewDirectoryLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryLoadFailed,
		Message:   "Failed to load the personnel directory",
		Details:   fmt.Sprintf("path: %s: %v", path, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryLookupFailedError creates a retryable cache/lookup error.
func NewDirectoryLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryLookupFailed,
		Message:   "Directory lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSnapshotInvalidError creates a non-retryable import validation error.
func NewSnapshotInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotInvalid,
		Message:   "Snapshot failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExportFailedError creates a retryable export error.
func NewExportFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportFailed,
		Message:   "Failed to build export",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send notification",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a non-retryable authentication error.
func NewUnauthorizedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Invalid admin secret",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Helpers
// ==========================

// Normalize ensures any error is represented as a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// GetErrorCategory groups codes for logging and metrics.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeRecordNotFound, ErrCodeInvalidRequest, ErrCodeSnapshotInvalid:
		return "client"
	case ErrCodeUnauthorized:
		return "auth"
	case ErrCodeDatabaseConnectionFailed, ErrCodeRecordSaveFailed,
		ErrCodeRecordQueryFailed, ErrCodeRecordDeleteFailed:
		return "database"
	case ErrCodeIndexingFailed, ErrCodeNotificationSendFailed:
		return "integration"
	default:
		return "internal"
	}
}
