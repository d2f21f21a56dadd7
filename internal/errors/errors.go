package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes.
//
// The two-tier error model: INVALID_DOMAIN and INVALID_INPUT are raised at the
// API boundary before any computation and are fatal to the call. Numeric
// degeneracies inside the engines (zero denominators, vanishing densities) are
// never surfaced as errors; each has a documented fallback value instead.
const (
	CodeInvalidDomain = "INVALID_DOMAIN"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternalError = "INTERNAL_ERROR"
)

// InvalidDomain reports a parameter outside its mathematically valid range
// (base rate outside (0,1), ICC outside (0,1], odds ratio <= 0, ...).
func InvalidDomain(message string) *AppError {
	return New(CodeInvalidDomain, message)
}

// InvalidDomainf is InvalidDomain with formatting.
func InvalidDomainf(format string, args ...interface{}) *AppError {
	return New(CodeInvalidDomain, fmt.Sprintf(format, args...))
}

// InvalidInput reports a structural problem with supplied data: empty sample,
// mismatched lengths, non-finite values, degenerate dichotomization.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// InvalidInputf is InvalidInput with formatting.
func InvalidInputf(format string, args ...interface{}) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// ConfigInvalid reports a bad environment/configuration value.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InternalError reports an unexpected internal failure.
func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

// IsInvalidDomain checks whether err carries the INVALID_DOMAIN code.
func IsInvalidDomain(err error) bool {
	return GetCode(err) == CodeInvalidDomain
}

// IsInvalidInput checks whether err carries the INVALID_INPUT code.
func IsInvalidInput(err error) bool {
	return GetCode(err) == CodeInvalidInput
}
