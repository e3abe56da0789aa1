package domain

import "fmt"

// Error types for domain-specific errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRasterize  ErrorType = "rasterize"
	ErrorTypeAPI        ErrorType = "api"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeIO         ErrorType = "io"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func ValidationError(message string, err error) *DomainError {
	return NewError(ErrorTypeValidation, message, err)
}

// RasterizeError covers document-open and page-render failures. These are
// fatal to a run: nothing downstream can proceed without page images.
func RasterizeError(message string, err error) *DomainError {
	return NewError(ErrorTypeRasterize, message, err)
}

// APIError covers model-call failures (auth, network, rate limit). These are
// local to a single image and never abort a batch.
func APIError(message string, err error) *DomainError {
	return NewError(ErrorTypeAPI, message, err)
}

// ParseError covers malformed model replies: missing fence markers, empty
// fenced content, or invalid JSON. Local to a single image, like APIError.
func ParseError(message string, err error) *DomainError {
	return NewError(ErrorTypeParse, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}
