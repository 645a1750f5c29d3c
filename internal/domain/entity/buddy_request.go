package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// BuddyRequestStatus represents the status of a buddy request.
type BuddyRequestStatus string

const (
	BuddyRequestStatusPending  BuddyRequestStatus = "PENDING"
	BuddyRequestStatusAccepted BuddyRequestStatus = "ACCEPTED"
	BuddyRequestStatusRejected BuddyRequestStatus = "REJECTED"
)

// Valid reports whether s is a known buddy request status.
func (s BuddyRequestStatus) Valid() bool {
	switch s {
	case BuddyRequestStatusPending, BuddyRequestStatusAccepted, BuddyRequestStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether s is ACCEPTED or REJECTED.
func (s BuddyRequestStatus) IsTerminal() bool {
	return s == BuddyRequestStatusAccepted || s == BuddyRequestStatusRejected
}

// ParseBuddyRequestStatus converts a wire value into a BuddyRequestStatus.
func ParseBuddyRequestStatus(s string) (BuddyRequestStatus, error) {
	status := BuddyRequestStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown buddy request status %q", s)
	}
	return status, nil
}

// BuddyRequest is a collaboration invitation between two users.
type BuddyRequest struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	ReceiverID  uuid.UUID
	Date        valueobject.Date
	Status      BuddyRequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBuddyRequest creates a pending request dated today.
func NewBuddyRequest(requesterID, receiverID uuid.UUID, today valueobject.Date) *BuddyRequest {
	now := time.Now().UTC()
	return &BuddyRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Date:        today,
		Status:      BuddyRequestStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsPending reports whether the request still awaits an answer.
func (b *BuddyRequest) IsPending() bool {
	return b.Status == BuddyRequestStatusPending
}

// Involves reports whether userID is the requester or the receiver.
func (b *BuddyRequest) Involves(userID uuid.UUID) bool {
	return b.RequesterID == userID || b.ReceiverID == userID
}

// Resolve moves a pending request to a terminal status.
func (b *BuddyRequest) Resolve(status BuddyRequestStatus) {
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
}
