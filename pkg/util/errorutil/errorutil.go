package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by services and the HTTP layer.
const (
	CodeValidation         = "VALIDATION_FAILED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeEmailInUse         = "EMAIL_IN_USE"
	CodeMalformedEmail     = "MALFORMED_EMAIL"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeSessionPending     = "SESSION_PENDING"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodePersistence        = "PERSISTENCE_ERROR"
	CodeNotification       = "NOTIFICATION_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
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

// Retryable reports whether repeating the same call may succeed.
func (e *DomainError) Retryable() bool {
	switch e.Code {
	case CodePersistence, CodeConflict, CodeNotification, CodeSessionPending:
		return true
	}
	return false
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

// NewAuthError reports a user-correctable credential or policy problem.
func NewAuthError(code, message string) error {
	status := http.StatusBadRequest
	switch code {
	case CodeInvalidCredentials:
		status = http.StatusUnauthorized
	case CodeEmailInUse:
		status = http.StatusConflict
	}
	return NewDomainError(code, message, status, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewSessionPending reports that the caller's session is still being resolved.
// It is neither a grant nor a denial.
func NewSessionPending() error {
	return NewDomainError(CodeSessionPending, "session not resolved yet", http.StatusServiceUnavailable, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewInvalidStatus(token string) error {
	return NewDomainError(CodeInvalidStatus, "unrecognized order status", http.StatusBadRequest,
		map[string]any{"status": token})
}

func NewInvalidTransition(from, to string) error {
	return NewDomainError(CodeInvalidTransition, "status transition not allowed", http.StatusConflict,
		map[string]any{"from": from, "to": to})
}

// NewPersistenceError wraps a record store failure. The caller may retry.
func NewPersistenceError(err error) error {
	return &DomainError{
		Code:       CodePersistence,
		Message:    "record store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewNotificationError wraps a delivery channel failure.
func NewNotificationError(err error) error {
	return &DomainError{
		Code:       CodeNotification,
		Message:    "order updated, message not delivered",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err carries the given DomainError code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
