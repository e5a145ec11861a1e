// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// APIError represents a standard structure for API errors.
// It serializes as {"error": Kind, "message": Message, "details"?: Details}.
type APIError struct {
	StatusCode int         `json:"-"`
	Kind       string      `json:"error"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`

	// sentinel links derived errors back to the package-level value they came from.
	sentinel *APIError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is e or the sentinel e was derived from.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e == t || (e.sentinel != nil && e.sentinel == t)
}

func NewAPIError(statusCode int, kind, message string) *APIError {
	return &APIError{StatusCode: statusCode, Kind: kind, Message: message}
}

func (e *APIError) derive() *APIError {
	cp := *e
	if cp.sentinel == nil {
		cp.sentinel = e
	}
	return &cp
}

// WithMessage returns a copy of e carrying message.
func (e *APIError) WithMessage(message string) *APIError {
	cp := e.derive()
	cp.Message = message
	return cp
}

// WithDetails returns a copy of e carrying details.
func (e *APIError) WithDetails(details interface{}) *APIError {
	cp := e.derive()
	cp.Details = details
	return cp
}

var (
	ErrBadRequest       = NewAPIError(http.StatusBadRequest, "Bad Request", "The request is invalid.")
	ErrValidation       = NewAPIError(http.StatusBadRequest, "Validation Error", "Input validation failed.")
	ErrUnauthorized     = NewAPIError(http.StatusUnauthorized, "Unauthorized", "Authentication is required.")
	ErrForbidden        = NewAPIError(http.StatusForbidden, "Forbidden", "You do not have permission to access this resource.")
	ErrNotFound         = NewAPIError(http.StatusNotFound, "Not Found", "The requested resource could not be found.")
	ErrMethodNotAllowed = NewAPIError(http.StatusMethodNotAllowed, "Method Not Allowed", "The method is not allowed for this resource.")
	ErrConflict         = NewAPIError(http.StatusBadRequest, "Bad Request", "The resource already exists.")
	ErrTooManyRequests  = NewAPIError(http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded, retry later.")
	ErrInternalServer   = NewAPIError(http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred on the server.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func NewValidationAPIError(details interface{}) *APIError {
	return ErrValidation.WithDetails(details)
}

// FormatValidationErrors converts validator.ValidationErrors into a map keyed by field.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := e.Field()
		name := lowerFirst(field)
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", name)
		case "required_without":
			message = fmt.Sprintf("The %s field is required when %s is not present.", name, lowerFirst(e.Param()))
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", name)
		case "url":
			message = fmt.Sprintf("The %s field must be a valid URL.", name)
		case "uuid", "uuid4":
			message = fmt.Sprintf("The %s field must be a valid UUID.", name)
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters long.", name, e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s.", name, e.Param())
		case "gt", "gte":
			message = fmt.Sprintf("The %s field must be greater than %s%s.", name, orEqual(e.Tag()), e.Param())
		case "oneof":
			message = fmt.Sprintf("The %s field must be one of the following values: %s.", name, e.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[name] = message
	}
	return errorMap
}

func orEqual(tag string) string {
	if tag == "gte" {
		return "or equal to "
	}
	return ""
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
