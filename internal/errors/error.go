package errors

import "fmt"

// Category classifies an engine error.
type Category string

const (
	// CategoryUsage marks caller mistakes: duplicate keys, effects created
	// outside a scope, malformed patches. Detected eagerly, never retried.
	CategoryUsage Category = "usage"

	// CategoryCallback marks failures inside user callbacks during a flush.
	CategoryCallback Category = "callback"

	// CategoryReconcile marks misuse of the keyed reconciler surface.
	CategoryReconcile Category = "reconcile"
)

// EngineError is a structured error with a stable code and fix suggestion.
type EngineError struct {
	// Code is the unique error identifier (e.g. "E102").
	Code string

	// Category is the error class.
	Category Category

	// Message is a short description.
	Message string

	// Detail is a longer explanation, filled from the registry.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *EngineError) Unwrap() error {
	return e.Wrapped
}

// Is matches two engine errors by code, so a registry template can serve as
// an errors.Is target.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *EngineError) WithSuggestion(s string) *EngineError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *EngineError) Wrap(err error) *EngineError {
	e.Wrapped = err
	return e
}

// New creates an EngineError from a registered code.
func New(code string) *EngineError {
	template, ok := registry[code]
	if !ok {
		return &EngineError{
			Code:    code,
			Message: "unknown error",
		}
	}
	return &EngineError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates an EngineError from a registered code with extra context
// appended to the message.
func Newf(code string, format string, args ...any) *EngineError {
	e := New(code)
	e.Message = fmt.Sprintf("%s: %s", e.Message, fmt.Sprintf(format, args...))
	return e
}
