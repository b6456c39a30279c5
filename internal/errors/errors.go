// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an analysis failure.
type ErrorType string

const (
	// Client-side validation, checked before any network call.
	ErrorTypeEmptyInput     ErrorType = "validation_empty"
	ErrorTypeLengthExceeded ErrorType = "validation_length"

	// Denied by the client-side throttle gate.
	ErrorTypeThrottled ErrorType = "throttled"

	// HTTP 400 from the analysis service, message surfaced verbatim.
	ErrorTypeServerRejected ErrorType = "server_rejected"

	// Any other network or HTTP failure.
	ErrorTypeTransient ErrorType = "transient"
)

// AppError is the application error carried across service boundaries.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(errType ErrorType, message string, originalError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     originalError,
		Code:    generateErrorCode(errType),
	}
}

// NewEmptyInputError reports empty or whitespace-only input.
func NewEmptyInputError() *AppError {
	return NewAppError(ErrorTypeEmptyInput, "input text is empty", nil)
}

// NewLengthExceededError reports input beyond the 1000 character limit.
func NewLengthExceededError(length int) *AppError {
	return NewAppError(ErrorTypeLengthExceeded,
		fmt.Sprintf("input text is %d characters, limit is 1000", length), nil)
}

// NewThrottledError reports a denial by the client-side throttle gate.
func NewThrottledError(remainingMs int64) *AppError {
	return NewAppError(ErrorTypeThrottled,
		fmt.Sprintf("throttled, %dms remaining in window", remainingMs), nil)
}

// NewServerRejectedError reports an HTTP 400 from the analysis service.
// serverMessage is the response body text, kept verbatim for display.
func NewServerRejectedError(serverMessage string) *AppError {
	return NewAppError(ErrorTypeServerRejected, serverMessage, nil)
}

// NewTransientError reports a network failure or unexpected HTTP status.
func NewTransientError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeTransient, message, originalError)
}

// IsEmptyInput checks whether err is an empty-input validation error.
func IsEmptyInput(err error) bool {
	return isType(err, ErrorTypeEmptyInput)
}

// IsLengthExceeded checks whether err is a length validation error.
func IsLengthExceeded(err error) bool {
	return isType(err, ErrorTypeLengthExceeded)
}

// IsThrottled checks whether err is a throttle denial.
func IsThrottled(err error) bool {
	return isType(err, ErrorTypeThrottled)
}

// IsServerRejected checks whether err is an HTTP 400 rejection.
func IsServerRejected(err error) bool {
	return isType(err, ErrorTypeServerRejected)
}

// IsTransient checks whether err is a transient network/HTTP failure.
func IsTransient(err error) bool {
	return isType(err, ErrorTypeTransient)
}

// IsValidation checks whether err is either validation failure.
func IsValidation(err error) bool {
	return IsEmptyInput(err) || IsLengthExceeded(err)
}

func isType(err error, errType ErrorType) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type == errType
	}
	return false
}

// TypeOf returns the taxonomy type of err, or "" for foreign errors.
func TypeOf(err error) ErrorType {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type
	}
	return ""
}

func generateErrorCode(errType ErrorType) string {
	switch errType {
	case ErrorTypeEmptyInput:
		return "EMPTY_INPUT"
	case ErrorTypeLengthExceeded:
		return "LENGTH_EXCEEDED"
	case ErrorTypeThrottled:
		return "THROTTLED"
	case ErrorTypeServerRejected:
		return "SERVER_REJECTED"
	case ErrorTypeTransient:
		return "TRANSIENT_FAILURE"
	default:
		return "UNKNOWN_ERROR"
	}
}

// WrapError wraps an existing error, preserving an existing AppError type.
func WrapError(err error, message string, errType ErrorType) error {
	if err == nil {
		return nil
	}

	var appError *AppError
	if errors.As(err, &appError) {
		return &AppError{
			Type:    appError.Type,
			Message: fmt.Sprintf("%s: %s", message, appError.Message),
			Err:     appError,
			Code:    appError.Code,
		}
	}

	return NewAppError(errType, message, err)
}
