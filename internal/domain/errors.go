package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Assessment specific errors
	CodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	CodeQuestionMismatch ErrorCode = "QUESTION_MISMATCH"
	CodeGeneration       ErrorCode = "GENERATION_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
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
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext attaches request-scoped detail surfaced in error responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Helper functions for common errors

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewSessionNotFoundError(userID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("No active assessment session for user: %s", userID), nil)
}

func NewQuestionMismatchError(submitted, expected string) *DomainError {
	e := NewError(CodeQuestionMismatch, "Submitted question ID does not match the last issued question", nil)
	return e.WithContext("submitted_id", submitted).WithContext("expected_id", expected)
}

func NewGenerationError(cause error) *DomainError {
	return NewError(CodeGeneration, "Question generation failed", cause)
}

// CacheError wraps a question bank failure. It is always recovered locally
// (logged, then the generation path takes over) and never reaches a caller.
type CacheError struct {
	Op    string
	Cause error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("question bank %s failed: %v", e.Op, e.Cause)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

func NewCacheError(op string, cause error) *CacheError {
	return &CacheError{Op: op, Cause: cause}
}
