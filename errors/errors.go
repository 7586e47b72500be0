package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies failures across the aggregation pipeline.
type ErrorType string

const (
	// Registry errors
	ErrorTypeUnknownPlugin ErrorType = "unknown_plugin"
	ErrorTypeDuplicate     ErrorType = "duplicate"

	// Collection errors
	ErrorTypePluginCollection ErrorType = "plugin_collection"
	ErrorTypeTimeout          ErrorType = "timeout"
	ErrorTypeUnavailable      ErrorType = "unavailable"

	// Consumer boundary errors
	ErrorTypeEntityNotFound ErrorType = "entity_not_found"
	ErrorTypeValidation     ErrorType = "validation"

	// System errors
	ErrorTypeInternal ErrorType = "internal"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError is the structured error carried across package boundaries.
type AppError struct {
	Type       ErrorType      `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	InnerError error          `json:"-"`
	HTTPStatus int            `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.InnerError != nil {
		return e.InnerError.Error()
	}
	return string(e.Type)
}

// Unwrap returns the inner error.
func (e *AppError) Unwrap() error {
	return e.InnerError
}

// Is matches AppErrors by type so callers can use errors.Is with sentinels.
func (e *AppError) Is(target error) bool {
	if targetApp, ok := target.(*AppError); ok {
		return e.Type == targetApp.Type
	}
	return false
}

// WithDetail adds a detail to the error.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithInnerError sets the inner error.
func (e *AppError) WithInnerError(err error) *AppError {
	e.InnerError = err
	return e
}

// WithHTTPStatus sets the HTTP status code.
func (e *AppError) WithHTTPStatus(status int) *AppError {
	e.HTTPStatus = status
	return e
}

// New creates a new AppError.
func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    string(errType),
	}
}

// FromError converts a standard error to an AppError.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Type:       ErrorTypeUnknown,
		Code:       string(ErrorTypeUnknown),
		Message:    err.Error(),
		InnerError: err,
	}
}

// Wrap wraps an error with a specific type and message.
func Wrap(err error, errType ErrorType, message string) *AppError {
	return &AppError{
		Type:       errType,
		Code:       string(errType),
		Message:    message,
		InnerError: err,
	}
}

// IsType reports whether err carries the given ErrorType.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// NewUnknownPlugin reports a plugin id absent from the registry.
func NewUnknownPlugin(id string) *AppError {
	return New(ErrorTypeUnknownPlugin, fmt.Sprintf("plugin %q is not registered", id)).
		WithDetail("plugin", id).
		WithHTTPStatus(http.StatusNotFound)
}

// NewDuplicate reports a plugin id registered twice in one discovery cycle.
func NewDuplicate(id string) *AppError {
	return New(ErrorTypeDuplicate, fmt.Sprintf("plugin %q already registered", id)).
		WithDetail("plugin", id).
		WithHTTPStatus(http.StatusConflict)
}

// NewEntityNotFound reports a missing entity, a precondition failure of the
// whole collection request.
func NewEntityNotFound(entityType, id string) *AppError {
	return New(ErrorTypeEntityNotFound, fmt.Sprintf("entity %s/%s not found", entityType, id)).
		WithDetail("entityType", entityType).
		WithDetail("id", id).
		WithHTTPStatus(http.StatusNotFound)
}

// NewCollection wraps a failure raised inside a plugin's Collect.
func NewCollection(pluginID string, err error) *AppError {
	return Wrap(err, ErrorTypePluginCollection, err.Error()).
		WithDetail("plugin", pluginID)
}

// NewTimeout reports a plugin exceeding its execution budget.
func NewTimeout(pluginID string, budget string) *AppError {
	return New(ErrorTypeTimeout, fmt.Sprintf("plugin %q exceeded %s collection budget", pluginID, budget)).
		WithDetail("plugin", pluginID)
}

// NewValidation reports malformed consumer input, rejected before collection.
func NewValidation(message string) *AppError {
	return New(ErrorTypeValidation, message).WithHTTPStatus(http.StatusBadRequest)
}

// NewInternal reports an unexpected system failure.
func NewInternal(message string) *AppError {
	return New(ErrorTypeInternal, message).WithHTTPStatus(http.StatusInternalServerError)
}

// Recover converts a panic value into an AppError. Deferred inside each
// plugin invocation so one plugin's panic never escapes the aggregation.
func Recover(r any) *AppError {
	switch v := r.(type) {
	case *AppError:
		return v
	case error:
		return Wrap(v, ErrorTypePluginCollection, v.Error())
	case string:
		return New(ErrorTypePluginCollection, v)
	default:
		return New(ErrorTypePluginCollection, fmt.Sprintf("%v", v))
	}
}
