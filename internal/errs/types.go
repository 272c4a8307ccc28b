package errs

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// ConfigError reports a missing or invalid setting detected at construction.
type ConfigError struct {
	ErrorMessage
	Field string
}

// ExternalServiceError wraps a failed call to the model service, the search
// index or another upstream dependency.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		ErrorMessage: ErrorMessage{Message: message},
		Field:        field,
	}
}

func NewExternalServiceError(service, message string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    IsTransient(err),
		Err:          err,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

// IsTransient reports whether err is worth retrying later: deadline and
// availability failures, either as context errors or gRPC status codes.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	default:
		return false
	}
}
