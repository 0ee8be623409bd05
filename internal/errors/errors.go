package errors

import "fmt"

// Code is a stable identifier for every failure mode the engine and CLI can
// report, independent of the wrapped Go error's own message.
type Code string

const (
	UnsupportedLanguage Code = "UNSUPPORTED_LANGUAGE"
	ParseFailure        Code = "PARSE_FAILURE"
	FileNotFound        Code = "FILE_NOT_FOUND"
	InvalidConfig       Code = "INVALID_CONFIG"
	InvalidThreshold    Code = "INVALID_THRESHOLD"
	InternalError       Code = "INTERNAL_ERROR"
)

// AnalysisError is a Code plus a human message and an optional wrapped
// cause, so a caller can either display Message or match on Code.
type AnalysisError struct {
	Code    Code
	Message string
	cause   error
}

// New creates an AnalysisError with no wrapped cause.
func New(code Code, message string) *AnalysisError {
	return &AnalysisError{Code: code, Message: message}
}

// Wrap creates an AnalysisError that carries cause for %w-style unwrapping.
func Wrap(code Code, message string, cause error) *AnalysisError {
	return &AnalysisError{Code: code, Message: message, cause: cause}
}

func (e *AnalysisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.cause
}
