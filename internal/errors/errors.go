package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewContractError reports an integrator mistake, such as a custom option
// that cannot resolve to a time of day. These are never user-input problems.
func NewContractError(subject string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeContract,
		Message: fmt.Sprintf("%s: %s", subject, reason),
		Code:    "CONTRACT_VIOLATION",
		Context: map[string]interface{}{
			"subject": subject,
			"reason":  reason,
		},
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: fmt.Sprintf("invalid configuration: %s", field),
		Code:    "CONFIGURATION_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"field": field,
		},
	}
}

// NewStateError reports an operation refused in the controller's current state
func NewStateError(operation string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeState,
		Message: fmt.Sprintf("cannot %s: %s", operation, reason),
		Code:    "INVALID_STATE",
		Context: map[string]interface{}{
			"operation": operation,
			"reason":    reason,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeInvalidInput, ErrorTypeState:
			return appErr.Message
		case ErrorTypeConfiguration:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s (%v)", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		case ErrorTypeContract:
			return "A custom option is misconfigured: " + appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeInvalidInput, ErrorTypeState:
			return false // user errors
		case ErrorTypeContract, ErrorTypeConfiguration:
			return true
		default:
			return true
		}
	}
	return true
}
