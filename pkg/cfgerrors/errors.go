// Package cfgerrors provides structured error handling for the configuration
// loader. Every failure in the load-verify-translate pipeline is reported as
// an *Error carrying the failure category, the offending path or field, and
// the call stack at the point of creation.
package cfgerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeIO represents file access errors: the configuration file is
	// missing, unreadable, empty or cannot be mapped.
	ErrorTypeIO ErrorType = "io"
	// ErrorTypeSchema represents structural errors: the mapped bytes are not
	// a well-formed instance of the comconfig schema.
	ErrorTypeSchema ErrorType = "schema"
	// ErrorTypeSemantic represents semantic errors: the buffer is
	// structurally valid but violates an invariant the schema cannot
	// express (missing required field, duplicate registration, unsupported
	// binding).
	ErrorTypeSemantic ErrorType = "semantic"
	// ErrorTypeInternal represents internal loader errors
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsIO reports whether the error is a file access error
func IsIO(err error) bool {
	return IsType(err, ErrorTypeIO)
}

// IsSchema reports whether the error is a structural schema error
func IsSchema(err error) bool {
	return IsType(err, ErrorTypeSchema)
}

// IsSemantic reports whether the error is a semantic validation error
func IsSemantic(err error) bool {
	return IsType(err, ErrorTypeSemantic)
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
