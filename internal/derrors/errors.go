// Package derrors provides custom error types for paramcomplete.
// Each type carries a stable code so callers can branch on the failure kind
// without matching on message text.
package derrors

import (
	"fmt"
)

// CompletionError is the base interface for all paramcomplete errors
type CompletionError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all paramcomplete errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// UnknownHandlerError is returned when a default completion refers to an unregistered handler
type UnknownHandlerError struct {
	baseError
	ID string
}

// NewUnknownHandlerError creates a new unknown handler error
func NewUnknownHandlerError(id string) *UnknownHandlerError {
	return &UnknownHandlerError{
		baseError: baseError{
			code:    "UNKNOWN_HANDLER",
			message: fmt.Sprintf("no completion handler registered as %q", id),
		},
		ID: id,
	}
}

// SyncCompletionRequiredError is returned when an async request reaches a sync-only handler.
// The caller decides whether to retry synchronously or give up.
type SyncCompletionRequiredError struct {
	baseError
	ID string
}

// NewSyncCompletionRequiredError creates a new sync completion required error
func NewSyncCompletionRequiredError(id string) *SyncCompletionRequiredError {
	return &SyncCompletionRequiredError{
		baseError: baseError{
			code:    "SYNC_COMPLETION_REQUIRED",
			message: fmt.Sprintf("completion handler %s must run synchronously", id),
		},
		ID: id,
	}
}

// HandlerError wraps a failure raised inside a completion handler
type HandlerError struct {
	baseError
	ID string
}

// NewHandlerError creates a new handler error
func NewHandlerError(id string, message string, cause error) *HandlerError {
	return &HandlerError{
		baseError: baseError{
			code:    "HANDLER_ERROR",
			message: message,
			cause:   cause,
		},
		ID: id,
	}
}

// ConfigurationError represents errors in manifest files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
		},
		Resource: resource,
	}
}
