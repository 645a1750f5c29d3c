// Package error defines domain-specific errors for the Goal Buddy application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")

	// ErrInvalidGoalPeriod is returned when the end date precedes the start date.
	ErrInvalidGoalPeriod = errors.New("invalid goal period")

	// ErrInvalidGoalStatus is returned for a status outside the known set.
	ErrInvalidGoalStatus = errors.New("invalid goal status")

	// ErrInvalidProgress is returned when progress is outside 0..100.
	ErrInvalidProgress = errors.New("invalid progress")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-010001"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-010006"
	ErrCodeInvalidGoalPeriod      GoalErrorCode = "GOL-010007"
	ErrCodeMissingGoalFields      GoalErrorCode = "GOL-010008"
	ErrCodeInvalidGoalStatus      GoalErrorCode = "GOL-010009"
	ErrCodeInvalidProgress        GoalErrorCode = "GOL-010010"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
