package errors

import (
	"errors"
	"fmt"
	"time"
)

// AnnotationError represents an annotation engine error with context
type AnnotationError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Context    string    `json:"context,omitempty"`
	ID         string    `json:"id,omitempty"`
	PageNumber int       `json:"page_number,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorType represents the categories of annotation engine errors
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota

	// ErrorTypeInvalidInput marks degenerate geometry or style values: a
	// stroke with fewer than two points, a non-positive radius, width or
	// font size. The offending annotation is rejected locally.
	ErrorTypeInvalidInput

	// ErrorTypeNotFound marks an operation referencing an absent id or
	// page. Treated as a no-op by the store so the UI layer can retry
	// idempotently.
	ErrorTypeNotFound

	// ErrorTypeStaleRender marks a rasterization result arriving after its
	// generation token was superseded. Discarded silently, never surfaced.
	ErrorTypeStaleRender

	// ErrorTypeDocumentNotLoaded marks an annotation or export operation
	// attempted before a document is loaded. Fatal to that operation.
	ErrorTypeDocumentNotLoaded
)

// Error implements the error interface
func (e *AnnotationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type.String(), e.Message, e.Context)
	}
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeInvalidInput:
		return "INVALID_INPUT"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeStaleRender:
		return "STALE_RENDER"
	case ErrorTypeDocumentNotLoaded:
		return "DOCUMENT_NOT_LOADED"
	default:
		return "UNKNOWN"
	}
}

// IsFatal reports whether errors of this type abort the surrounding
// operation instead of degrading to a no-op
func (et ErrorType) IsFatal() bool {
	return et == ErrorTypeDocumentNotLoaded
}

// NewInvalidInput creates an InvalidInput error
func NewInvalidInput(message string) *AnnotationError {
	return &AnnotationError{
		Type:      ErrorTypeInvalidInput,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewNotFound creates a NotFound error for the given annotation id
func NewNotFound(id string) *AnnotationError {
	return &AnnotationError{
		Type:      ErrorTypeNotFound,
		Message:   "annotation not found",
		ID:        id,
		Timestamp: time.Now(),
	}
}

// NewStaleRender creates a StaleRender error for the given render target
func NewStaleRender(target string) *AnnotationError {
	return &AnnotationError{
		Type:      ErrorTypeStaleRender,
		Message:   "render result superseded",
		Context:   target,
		Timestamp: time.Now(),
	}
}

// NewDocumentNotLoaded creates a DocumentNotLoaded error for the given operation
func NewDocumentNotLoaded(operation string) *AnnotationError {
	return &AnnotationError{
		Type:      ErrorTypeDocumentNotLoaded,
		Message:   "no document loaded",
		Context:   operation,
		Timestamp: time.Now(),
	}
}

// WithContext adds context to an existing AnnotationError
func (e *AnnotationError) WithContext(context string) *AnnotationError {
	e.Context = context
	return e
}

// WithPage adds page number information to an existing AnnotationError
func (e *AnnotationError) WithPage(pageNumber int) *AnnotationError {
	e.PageNumber = pageNumber
	return e
}

// IsFatal reports whether this specific error aborts the operation
func (e *AnnotationError) IsFatal() bool {
	return e.Type.IsFatal()
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown when err
// is not an AnnotationError
func TypeOf(err error) ErrorType {
	var ae *AnnotationError
	if errors.As(err, &ae) {
		return ae.Type
	}
	return ErrorTypeUnknown
}

// IsInvalidInput reports whether err is an InvalidInput error
func IsInvalidInput(err error) bool {
	return TypeOf(err) == ErrorTypeInvalidInput
}

// IsNotFound reports whether err is a NotFound error
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsStaleRender reports whether err is a StaleRender error
func IsStaleRender(err error) bool {
	return TypeOf(err) == ErrorTypeStaleRender
}

// IsDocumentNotLoaded reports whether err is a DocumentNotLoaded error
func IsDocumentNotLoaded(err error) bool {
	return TypeOf(err) == ErrorTypeDocumentNotLoaded
}
