// Package errors provides centralized error handling with categories for the health diary service
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"net/http"
	"time"
)

// ErrorCategory represents the type of error for better categorization
type ErrorCategory string

// CategorizedError is an interface for errors that can specify their own category
type CategorizedError interface {
	error
	ErrorCategory() ErrorCategory
}

const (
	// CategoryConfiguration covers missing or unusable credentials and settings.
	// Absence of a required environment variable surfaces with this category.
	CategoryConfiguration ErrorCategory = "configuration"

	// CategoryValidation covers malformed or missing caller input. These are
	// the only errors rendered as a 4xx response.
	CategoryValidation ErrorCategory = "validation"

	// CategoryHTTP covers non-2xx responses from an upstream service. The
	// error context carries the upstream status code and raw body.
	CategoryHTTP ErrorCategory = "http-request"

	// CategoryNetwork covers transport-level failures (connection refused,
	// timeout, DNS) wrapping the underlying cause.
	CategoryNetwork ErrorCategory = "network"

	CategoryTableStorage ErrorCategory = "table-storage"
	CategoryCompletion   ErrorCategory = "completion"
	CategoryJSONParsing  ErrorCategory = "json-parsing"
	CategoryGeneric      ErrorCategory = "generic"
)

// ComponentUnknown is used when the component was not set by the caller.
const ComponentUnknown = "unknown"

// EnhancedError wraps an error with additional context and metadata
type EnhancedError struct {
	Err       error          // Original error
	Component string         // Component where error occurred
	Category  ErrorCategory  // Error category for better grouping
	Context   map[string]any // Additional context data
	Timestamp time.Time      // When the error occurred
}

// Error implements the error interface
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap implements the error unwrapping interface
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is matches two enhanced errors by category, otherwise defers to the
// wrapped error chain.
func (ee *EnhancedError) Is(target error) bool {
	if ee2, ok := target.(*EnhancedError); ok {
		return ee.Category == ee2.Category
	}
	return stderrors.Is(ee.Err, target)
}

// ErrorCategory implements CategorizedError
func (ee *EnhancedError) ErrorCategory() ErrorCategory {
	return ee.Category
}

// GetCategory returns the error category as a string
func (ee *EnhancedError) GetCategory() string {
	return string(ee.Category)
}

// GetContext returns a copy of the error context
func (ee *EnhancedError) GetContext() map[string]any {
	if ee.Context == nil {
		return nil
	}
	contextCopy := make(map[string]any, len(ee.Context))
	maps.Copy(contextCopy, ee.Context)
	return contextCopy
}

// GetMessage returns the error message
func (ee *EnhancedError) GetMessage() string {
	if ee.Err != nil {
		return ee.Err.Error()
	}
	return ""
}

// ErrorBuilder provides a fluent interface for creating enhanced errors
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New creates a new error builder wrapping err
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{
		err: err,
		// context is lazily initialized when needed
	}
}

// Newf creates a new formatted error with enhanced context
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category for better grouping
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds context data to the error
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// Build creates the EnhancedError
func (eb *ErrorBuilder) Build() *EnhancedError {
	ee := &EnhancedError{
		Err:       eb.err,
		Component: eb.component,
		Category:  eb.category,
		Context:   eb.context,
		Timestamp: time.Now(),
	}
	if ee.Component == "" {
		ee.Component = ComponentUnknown
	}
	if ee.Category == "" {
		ee.Category = CategoryGeneric
	}
	return ee
}

// HTTPStatus maps an error to the HTTP status code it should be rendered
// with at the API boundary. Validation failures are the caller's fault and
// map to 400; everything else, including configuration absence and upstream
// failures, is a 500.
func HTTPStatus(err error) int {
	var ee *EnhancedError
	if As(err, &ee) && ee.Category == CategoryValidation {
		return http.StatusBadRequest
	}
	var ce CategorizedError
	if As(err, &ce) && ce.ErrorCategory() == CategoryValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// CategoryOf returns the category of err, or CategoryGeneric for plain errors.
func CategoryOf(err error) ErrorCategory {
	var ee *EnhancedError
	if As(err, &ee) {
		return ee.Category
	}
	var ce CategorizedError
	if As(err, &ce) {
		return ce.ErrorCategory()
	}
	return CategoryGeneric
}

// Standard library compatibility wrappers so callers only import this package.

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// NewStd creates a standard error without enhancement
func NewStd(text string) error {
	return stderrors.New(text)
}
