// Package error defines domain-specific errors for the Goal Buddy application.
package error

import "errors"

// Checkpoint domain errors.
var (
	// ErrCheckpointNotFound is returned when a checkpoint is not found.
	ErrCheckpointNotFound = errors.New("checkpoint not found")

	// ErrCheckpointGoalNotFound is returned when the parent goal does not exist.
	ErrCheckpointGoalNotFound = errors.New("goal not found for checkpoint")

	// ErrUnauthorizedCheckpointAccess is returned when the parent goal belongs to another user.
	ErrUnauthorizedCheckpointAccess = errors.New("unauthorized access to checkpoint")

	// ErrInvalidCheckpointStatus is returned for a status outside the known set.
	ErrInvalidCheckpointStatus = errors.New("invalid checkpoint status")
)

// CheckpointErrorCode defines error codes for checkpoint errors.
// Format: CHK-XXYYYY where XX is category and YYYY is specific error.
type CheckpointErrorCode string

const (
	ErrCodeCheckpointNotFound           CheckpointErrorCode = "CHK-010001"
	ErrCodeCheckpointGoalNotFound       CheckpointErrorCode = "CHK-010002"
	ErrCodeUnauthorizedCheckpointAccess CheckpointErrorCode = "CHK-010003"
	ErrCodeInvalidCheckpointStatus      CheckpointErrorCode = "CHK-010004"
	ErrCodeMissingCheckpointFields      CheckpointErrorCode = "CHK-010005"
)

// CheckpointError represents a checkpoint error with code and message.
type CheckpointError struct {
	Code    CheckpointErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CheckpointError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CheckpointError) Unwrap() error {
	return e.Err
}

// NewCheckpointError creates a new CheckpointError with the given code and message.
func NewCheckpointError(code CheckpointErrorCode, message string, err error) *CheckpointError {
	return &CheckpointError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
