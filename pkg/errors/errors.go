// Package errors defines the categorized error type used across the
// holdings analyzer, with error codes, remediation suggestions, contextual
// key/value pairs, and stack traces.
//
// The computation core (matcher, diff, analytics, redflags) is error-free by
// contract: data-quality conditions degrade to defined zero values instead
// of failing. Errors in this package therefore describe the edges of the
// system only: unreadable files, payloads that are not list-shaped,
// invalid configuration, and internal invariant violations.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory groups errors by subsystem.
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryParse         ErrorCategory = "parse"
	CategoryValidation    ErrorCategory = "validation"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryAnalysis      ErrorCategory = "analysis"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode identifies a specific failure within a category.
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"

	// Parse errors
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeNotListShaped ErrorCode = "not_list_shaped"
	CodeMissingColumn ErrorCode = "missing_column"

	// Validation errors
	CodeMissingField ErrorCode = "missing_field"
	CodeInvalidValue ErrorCode = "invalid_value"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Analysis errors
	CodeAnalysisFailed ErrorCode = "analysis_failed"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// Context carries additional key/value detail about an error.
type Context map[string]interface{}

// EngineError is the base error type for all application errors.
type EngineError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s/%s] %s", e.Category, e.Code, e.Message))
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// GetExitCode maps the error category to a CLI exit code.
func (e *EngineError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryParse:
		return 3
	case CategoryValidation, CategoryConfiguration:
		return 4
	case CategoryAnalysis, CategoryInternal:
		return 5
	default:
		return 1
	}
}

// WithContext adds one contextual key/value pair.
func (e *EngineError) WithContext(key string, value interface{}) *EngineError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion attaches a remediation suggestion.
func (e *EngineError) WithSuggestion(suggestion string) *EngineError {
	e.Suggestion = suggestion
	return e
}

// stackTracer extracts stack traces from github.com/pkg/errors values.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// New creates a new EngineError with a captured stack trace.
func New(category ErrorCategory, code ErrorCode, message string) *EngineError {
	return &EngineError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with EngineError context. A nil err yields
// nil.
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *EngineError {
	if err == nil {
		return nil
	}
	return &EngineError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// FileError creates a file-access error for a path.
func FileError(code ErrorCode, path string, err error) *EngineError {
	var message, suggestion string
	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	result := wrapOrNew(err, CategoryFile, code, message)
	return result.WithSuggestion(suggestion).WithContext("file_path", path)
}

// ParseError creates a snapshot-parsing error. A not-list-shaped payload is
// the one contract violation the core surfaces instead of degrading.
func ParseError(code ErrorCode, source string, err error) *EngineError {
	var message, suggestion string
	switch code {
	case CodeNotListShaped:
		message = fmt.Sprintf("snapshot payload in %s is not a list of holdings", source)
		suggestion = "the snapshot must be a JSON array of holding objects or a CSV with one holding per row"
	case CodeMissingColumn:
		message = fmt.Sprintf("snapshot %s is missing a required column", source)
		suggestion = "ensure the CSV header names the company name column (aliases are accepted)"
	default:
		message = fmt.Sprintf("invalid snapshot format in %s", source)
		suggestion = "check that the file is valid JSON or CSV"
	}

	result := wrapOrNew(err, CategoryParse, code, message)
	return result.WithSuggestion(suggestion).WithContext("source", source)
}

// ValidationError creates a field-validation error.
func ValidationError(code ErrorCode, field string, value interface{}, err error) *EngineError {
	var message string
	switch code {
	case CodeMissingField:
		message = fmt.Sprintf("required field missing: %s", field)
	default:
		message = fmt.Sprintf("invalid value for %s: %v", field, value)
	}

	result := wrapOrNew(err, CategoryValidation, code, message)
	return result.WithContext("field", field)
}

// ConfigurationError creates a configuration error for a setting.
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *EngineError {
	var message string
	switch code {
	case CodeMissingConfig:
		message = fmt.Sprintf("required configuration missing: %s", setting)
	default:
		message = fmt.Sprintf("invalid configuration %s: %v", setting, value)
	}

	result := wrapOrNew(err, CategoryConfiguration, code, message)
	return result.
		WithSuggestion("review the configuration flags and file").
		WithContext("setting", setting)
}

// AnalysisError creates an error for a failed analysis operation.
func AnalysisError(code ErrorCode, operation string, err error) *EngineError {
	message := fmt.Sprintf("analysis operation failed: %s", operation)
	result := wrapOrNew(err, CategoryAnalysis, code, message)
	return result.WithContext("operation", operation)
}

// InternalError creates an error for an internal invariant violation.
func InternalError(code ErrorCode, operation string, err error) *EngineError {
	message := fmt.Sprintf("internal error during %s", operation)
	result := wrapOrNew(err, CategoryInternal, code, message)
	return result.
		WithSuggestion("this is a bug; please report it with the command you ran").
		WithContext("operation", operation)
}

func wrapOrNew(err error, category ErrorCategory, code ErrorCode, message string) *EngineError {
	if err != nil {
		return Wrap(err, category, code, message)
	}
	return New(category, code, message)
}

// IsEngineError reports whether err is (or wraps) an EngineError.
func IsEngineError(err error) bool {
	_, ok := AsEngineError(err)
	return ok
}

// AsEngineError extracts an EngineError from err's chain.
func AsEngineError(err error) (*EngineError, bool) {
	for err != nil {
		if engineErr, ok := err.(*EngineError); ok {
			return engineErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// WrapIfNeeded wraps err unless it already is an EngineError.
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *EngineError {
	if err == nil {
		return nil
	}
	if engineErr, ok := AsEngineError(err); ok {
		return engineErr
	}
	return Wrap(err, category, code, message)
}
