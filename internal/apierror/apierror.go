// Package apierror provides the standardized error response shapes for the
// API. Every 4xx/5xx body goes through this package so clients always get
// the same envelope and internal detail (stack traces, SQL errors) never
// leaks.
package apierror

// APIError is the canonical error envelope.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries the per-field failures of a rejected payload.
type ValidationError struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func NewValidation(fields []FieldError) *ValidationError {
	return &ValidationError{Message: "Error de validación", Errors: fields}
}
