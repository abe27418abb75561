package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes failures talking to the analysis service
type ErrorType string

const (
	// ErrTypeNetwork indicates the request never produced a response
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates the request deadline or cancellation hit first
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeService indicates the service answered with a non-2xx status
	ErrTypeService ErrorType = "service"

	// ErrTypeDecode indicates a response body that could not be decoded
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeConfiguration indicates an unusable client configuration
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeValidation indicates input rejected before any request was made
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeInternal indicates a local failure building the request
	ErrTypeInternal ErrorType = "internal"
)

// ServiceError describes a failed call to the analysis service
type ServiceError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Operation  string    `json:"operation,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	var parts []string

	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Operation))
	}

	parts = append(parts, fmt.Sprintf("type=%s", e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is matches any *ServiceError with the same Type
func (e *ServiceError) Is(target error) bool {
	if se, ok := target.(*ServiceError); ok {
		return e.Type == se.Type
	}
	return false
}

// ValidationError represents input rejected before reaching the service
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, &ServiceError{Type: ErrTypeValidation}) match too
func (e *ValidationError) Is(target error) bool {
	if se, ok := target.(*ServiceError); ok {
		return se.Type == ErrTypeValidation
	}
	return false
}

// ConfigurationError represents an invalid client configuration
type ConfigurationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for field '%s': %s", e.Field, e.Message)
}

// NewServiceError creates a new service error
func NewServiceError(errType ErrorType, operation, message string) *ServiceError {
	return &ServiceError{
		Type:      errType,
		Operation: operation,
		Message:   message,
	}
}

// NewServiceErrorWithCause creates a service error with an underlying cause
func NewServiceErrorWithCause(errType ErrorType, operation, message string, cause error) *ServiceError {
	return &ServiceError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewValidationError creates a validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusCode extracts the HTTP status of a service error, 0 if there is none
func StatusCode(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
