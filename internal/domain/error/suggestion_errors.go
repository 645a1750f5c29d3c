// Package error defines domain-specific errors for the Goal Buddy application.
package error

import "errors"

// Checkpoint suggestion errors.
var (
	// ErrSuggestionUnavailable is returned when no AI provider is configured.
	ErrSuggestionUnavailable = errors.New("suggestion service unavailable")

	// ErrSuggestionFailed is returned when the AI provider fails or answers garbage.
	ErrSuggestionFailed = errors.New("suggestion generation failed")
)

// SuggestionErrorCode defines error codes for suggestion errors.
// Format: SUG-XXYYYY where XX is category and YYYY is specific error.
type SuggestionErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeSuggestionUnavailable SuggestionErrorCode = "SUG-010001"
	ErrCodeSuggestionAuth        SuggestionErrorCode = "SUG-010002"

	// Provider errors (02XXXX)
	ErrCodeSuggestionFailed        SuggestionErrorCode = "SUG-020001"
	ErrCodeSuggestionRateLimited   SuggestionErrorCode = "SUG-020002"
	ErrCodeSuggestionTimeout       SuggestionErrorCode = "SUG-020003"
	ErrCodeSuggestionProviderDown  SuggestionErrorCode = "SUG-020004"
	ErrCodeSuggestionInvalidOutput SuggestionErrorCode = "SUG-020005"
)

// SuggestionError represents a suggestion error with code and message.
type SuggestionError struct {
	Code    SuggestionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SuggestionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SuggestionError) Unwrap() error {
	return e.Err
}

// NewSuggestionError creates a new SuggestionError with the given code and message.
func NewSuggestionError(code SuggestionErrorCode, message string, err error) *SuggestionError {
	return &SuggestionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
