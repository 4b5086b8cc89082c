// Package apierror provides the JSON error envelope returned to clients.
// Every 4xx/5xx response goes through this package so internal details
// (stack traces, SQL errors) never leak to the frontend.
package apierror

// APIError is the canonical error body. Codigo is only set for the register
// state-check conflicts (1 = previous day's register still open, 2 = today's
// register already closed).
type APIError struct {
	Detail string `json:"detail"`
	Codigo int    `json:"codigo,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func WithCode(codigo int, msg string) *APIError {
	return &APIError{Detail: msg, Codigo: codigo}
}

// ValidationError wraps per-field validation failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}
