// internal/common/errors/errors.go
// Package errors provides standardized error handling for the analysis pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Provider task failures. Isolated per task; the batch never fails.
	ErrCodeProviderTimeout      ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeProviderCallFailed   ErrorCode = "PROVIDER_CALL_FAILED"
	ErrCodeProviderBadPayload   ErrorCode = "PROVIDER_BAD_PAYLOAD"
	ErrCodeProviderUnconfigured ErrorCode = "PROVIDER_UNCONFIGURED"
	ErrCodeProviderUnauthorized ErrorCode = "PROVIDER_UNAUTHORIZED"

	// Source task failures, same isolation rules as providers.
	ErrCodeSourceTimeout     ErrorCode = "SOURCE_TIMEOUT"
	ErrCodeSourceFetchFailed ErrorCode = "SOURCE_FETCH_FAILED"
	ErrCodeSourceBadItem     ErrorCode = "SOURCE_BAD_ITEM"

	// Caller contract violations. The only class that rejects to the caller.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Per-artifact categorization faults, replaced by the general fallback.
	ErrCodeCategorizationFailed ErrorCode = "CATEGORIZATION_FAILED"

	// Whole-batch unavailability, absorbed into a degraded report.
	ErrCodeBatchUnavailable ErrorCode = "BATCH_UNAVAILABLE"

	// Collaborator infrastructure.
	ErrCodeCacheUnavailable  ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeStoreInsertFailed ErrorCode = "STORE_INSERT_FAILED"
	ErrCodeStoreQueryFailed  ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeIndexWriteFailed  ErrorCode = "INDEX_WRITE_FAILED"
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

// NewProviderTimeoutError creates a retryable provider timeout error.
func NewProviderTimeoutError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   "Provider call exceeded timeout",
		Details:   fmt.Sprintf("provider: %s", provider),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderCallFailedError creates a retryable provider transport error.
func NewProviderCallFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderCallFailed,
		Message:   "Provider call failed",
		Details:   fmt.Sprintf("provider: %s, error: %s", provider, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderBadPayloadError creates a non-retryable malformed-response error.
func NewProviderBadPayloadError(provider, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderBadPayload,
		Message:   "Provider returned a malformed payload",
		Details:   fmt.Sprintf("provider: %s, %s", provider, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnconfiguredError marks a capability excluded before dispatch.
func NewProviderUnconfiguredError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnconfigured,
		Message:   "Provider has no viable configuration",
		Details:   fmt.Sprintf("provider: %s", provider),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnauthorizedError creates a non-retryable auth failure.
func NewProviderUnauthorizedError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnauthorized,
		Message:   "Provider rejected credentials",
		Details:   fmt.Sprintf("provider: %s", provider),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceTimeoutError creates a retryable source timeout error.
func NewSourceTimeoutError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceTimeout,
		Message:   "Source fetch exceeded timeout",
		Details:   fmt.Sprintf("source: %s", source),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceFetchFailedError creates a retryable source transport error.
func NewSourceFetchFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceFetchFailed,
		Message:   "Source fetch failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceBadItemError creates a non-retryable malformed-item error.
func NewSourceBadItemError(source, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceBadItem,
		Message:   "Source returned a malformed item",
		Details:   fmt.Sprintf("source: %s, %s", source, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable caller input error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCategorizationError wraps a per-artifact categorization fault.
func NewCategorizationError(artifactID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCategorizationFailed,
		Message:   "Artifact categorization failed",
		Details:   fmt.Sprintf("artifactId: %s, error: %s", artifactID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBatchUnavailableError marks a whole batch as degraded.
func NewBatchUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBatchUnavailable,
		Message:   "No providers or sources were available for the batch",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Report cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreInsertFailedError creates a retryable artifact store error.
func NewStoreInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreInsertFailed,
		Message:   "Artifact store insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreQueryFailedError creates a retryable artifact store error.
func NewStoreQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreQueryFailed,
		Message:   "Artifact store query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexWriteFailedError creates a retryable search index error.
func NewIndexWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexWriteFailed,
		Message:   "Artifact index write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Retry Policy
// ==========================

// GetRetryCount returns the bounded per-task retry budget for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProviderCallFailed,
		ErrCodeSourceFetchFailed,
		ErrCodeStoreInsertFailed,
		ErrCodeStoreQueryFailed,
		ErrCodeIndexWriteFailed:
		return 3

	case ErrCodeProviderTimeout,
		ErrCodeSourceTimeout,
		ErrCodeCacheUnavailable:
		return 2

	case ErrCodeBatchUnavailable:
		return 1

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROVIDER"):
		return "PROVIDER"
	case strings.Contains(codeStr, "SOURCE"):
		return "SOURCE"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CATEGORIZATION"):
		return "CATEGORIZATION"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "INDEX") || strings.Contains(codeStr, "CACHE"):
		return "STORAGE"
	default:
		return "OTHER"
	}
}
