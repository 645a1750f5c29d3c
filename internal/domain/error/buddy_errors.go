// Package error defines domain-specific errors for the Goal Buddy application.
package error

import "errors"

// Buddy request domain errors.
var (
	// ErrBuddyRequestNotFound is returned when a buddy request is not found.
	ErrBuddyRequestNotFound = errors.New("buddy request not found")

	// ErrBuddyRequestExists is returned when the pair already has a request.
	ErrBuddyRequestExists = errors.New("buddy request already exists")

	// ErrSelfBuddyRequest is returned when a user targets themselves.
	ErrSelfBuddyRequest = errors.New("cannot send request to yourself")

	// ErrRequesterNotFound is returned when the requesting user does not exist.
	ErrRequesterNotFound = errors.New("requester not found")

	// ErrReceiverNotFound is returned when the receiving user does not exist.
	ErrReceiverNotFound = errors.New("receiver not found")

	// ErrNotRequestReceiver is returned when someone other than the receiver answers.
	ErrNotRequestReceiver = errors.New("only the receiver can answer a request")

	// ErrRequestNotPending is returned when answering an already answered request.
	ErrRequestNotPending = errors.New("request is not pending")

	// ErrInvalidBuddyStatus is returned for a status that is not a valid answer.
	ErrInvalidBuddyStatus = errors.New("invalid buddy request status")

	// ErrUnauthorizedBuddyAccess is returned when a user reads a request they are not part of.
	ErrUnauthorizedBuddyAccess = errors.New("unauthorized access to buddy request")
)

// BuddyErrorCode defines error codes for buddy request errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BuddyErrorCode string

const (
	// Creation errors (01XXXX)
	ErrCodeBuddyRequestExists BuddyErrorCode = "BUD-010001"
	ErrCodeSelfBuddyRequest   BuddyErrorCode = "BUD-010002"
	ErrCodeRequesterNotFound  BuddyErrorCode = "BUD-010003"
	ErrCodeReceiverNotFound   BuddyErrorCode = "BUD-010004"
	ErrCodeMissingBuddyFields BuddyErrorCode = "BUD-010005"

	// Answer errors (02XXXX)
	ErrCodeBuddyRequestNotFound    BuddyErrorCode = "BUD-020001"
	ErrCodeNotRequestReceiver      BuddyErrorCode = "BUD-020002"
	ErrCodeRequestNotPending       BuddyErrorCode = "BUD-020003"
	ErrCodeInvalidBuddyStatus      BuddyErrorCode = "BUD-020004"
	ErrCodeUnauthorizedBuddyAccess BuddyErrorCode = "BUD-020005"
)

// BuddyError represents a buddy request error with code and message.
type BuddyError struct {
	Code    BuddyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BuddyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BuddyError) Unwrap() error {
	return e.Err
}

// NewBuddyError creates a new BuddyError with the given code and message.
func NewBuddyError(code BuddyErrorCode, message string, err error) *BuddyError {
	return &BuddyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
