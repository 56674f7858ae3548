// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrBrowserNotFound  = errors.New("chrome browser not found")
	ErrBrowserStart     = errors.New("browser failed to start")
	ErrSessionClosed    = errors.New("browser session is closed")
	ErrTimeout          = errors.New("operation timed out")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrNavigation       = errors.New("navigation failed")
	ErrSelectorNotFound = errors.New("selector not found")
	ErrNoRaceData       = errors.New("no race data on page")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeBrowserStart ErrorCode = "BROWSER_START"
	ErrCodeNavigation   ErrorCode = "NAVIGATION"
	ErrCodeNoData       ErrorCode = "NO_DATA"
	ErrCodeClosed       ErrorCode = "CLOSED"
)

var codeSentinels = map[ErrorCode]error{
	ErrCodeNotFound:     ErrSelectorNotFound,
	ErrCodeTimeout:      ErrTimeout,
	ErrCodeValidation:   ErrInvalidURL,
	ErrCodeBrowserStart: ErrBrowserStart,
	ErrCodeNavigation:   ErrNavigation,
	ErrCodeNoData:       ErrNoRaceData,
	ErrCodeClosed:       ErrSessionClosed,
}

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is matches another EngineError with the same code, the sentinel error
// registered for the code, or anything the underlying error matches.
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	if sentinel, ok := codeSentinels[e.Code]; ok && sentinel == target {
		return true
	}
	return errors.Is(e.Underlying, target)
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// StatusCode returns the HTTP status recorded under the "status" detail, or 0
func (e *EngineError) StatusCode() int {
	status, _ := e.Details["status"].(int)
	return status
}

// CodeOf returns the code of the first EngineError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
