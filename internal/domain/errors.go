package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"

	// ErrEmptySource is the only fatal pipeline error: the source text has
	// no usable sentences and no key terms, so nothing can be generated.
	ErrEmptySource ErrorCode = "EMPTY_SOURCE"

	// Generation service errors
	ErrLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	ErrLLMTransport   ErrorCode = "LLM_TRANSPORT_ERROR"
	ErrLLMUpstream    ErrorCode = "LLM_UPSTREAM_ERROR"

	// Validator rejection of generated output
	ErrInvalidGeneration ErrorCode = "INVALID_GENERATION"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewEmptySourceError() *DomainError {
	return NewError(ErrEmptySource, "source text has no extractable sentences or key terms", nil)
}

func NewServiceUnavailableError(message string) *DomainError {
	return NewError(ErrLLMUnavailable, message, nil)
}

func NewTransportError(err error) *DomainError {
	return NewError(ErrLLMTransport, "generation service transport failure", err)
}

func NewUpstreamError(err error) *DomainError {
	return NewError(ErrLLMUpstream, "generation service returned an unusable response", err)
}

func NewInvalidGenerationError(message string) *DomainError {
	return NewError(ErrInvalidGeneration, message, nil)
}

// IsEmptySource reports whether err is the fatal empty-input error.
func IsEmptySource(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrEmptySource
}
