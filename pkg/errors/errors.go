package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Target errors
	ErrTargetFormat   ErrorCode = "TARGET_FORMAT"
	ErrInputNotFound  ErrorCode = "INPUT_NOT_FOUND"
	ErrTargetConflict ErrorCode = "TARGET_CONFLICT"
	ErrOutputExists   ErrorCode = "OUTPUT_EXISTS"

	// Render errors
	ErrTemplateParse ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateExec  ErrorCode = "TEMPLATE_EXEC"
	ErrFuncArity     ErrorCode = "FUNC_ARITY"
	ErrFuncKind      ErrorCode = "FUNC_KIND"
	ErrFuncValue     ErrorCode = "FUNC_VALUE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// EnvtmplError represents a structured error with code and details
type EnvtmplError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EnvtmplError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EnvtmplError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *EnvtmplError) Is(target error) bool {
	var targetErr *EnvtmplError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EnvtmplError with the given code and message
func New(code ErrorCode, message string) *EnvtmplError {
	return &EnvtmplError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EnvtmplError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EnvtmplError {
	return &EnvtmplError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EnvtmplError
func Wrap(err error, code ErrorCode, message string) *EnvtmplError {
	if err == nil {
		return nil
	}
	return &EnvtmplError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EnvtmplError {
	if err == nil {
		return nil
	}
	return &EnvtmplError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *EnvtmplError) WithDetail(key string, value interface{}) *EnvtmplError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *EnvtmplError) WithDetails(details map[string]interface{}) *EnvtmplError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if any error in the chain has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var envErr *EnvtmplError
		if !errors.As(err, &envErr) {
			return false
		}
		if envErr.Code == code {
			return true
		}
		err = envErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if err is not an EnvtmplError
func GetErrorCode(err error) ErrorCode {
	var envErr *EnvtmplError
	if errors.As(err, &envErr) {
		return envErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an EnvtmplError
func GetErrorDetails(err error) map[string]interface{} {
	var envErr *EnvtmplError
	if errors.As(err, &envErr) {
		return envErr.Details
	}
	return nil
}
