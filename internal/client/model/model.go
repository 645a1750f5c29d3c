package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// Status fields are decoded verbatim. Values outside the enumerations are
// reported by the view models rather than rejected here.

// User is a registered account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Goal is a user-owned objective with server-computed progress.
type Goal struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StartDate   valueobject.Date `json:"startDate"`
	EndDate     valueobject.Date `json:"endDate"`
	Progress    int              `json:"progress"`
	Status      GoalStatus       `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Checkpoint is a dated step towards a goal.
type Checkpoint struct {
	ID            uuid.UUID         `json:"id"`
	GoalID        uuid.UUID         `json:"goalId"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	DueDate       valueobject.Date  `json:"dueDate"`
	Status        CheckpointStatus  `json:"status"`
	CompletedDate *valueobject.Date `json:"completedDate"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// BuddyRequest is a collaboration invitation between two users.
type BuddyRequest struct {
	ID          uuid.UUID          `json:"id"`
	RequesterID uuid.UUID          `json:"requesterId"`
	ReceiverID  uuid.UUID          `json:"receiverId"`
	Date        valueobject.Date   `json:"date"`
	Status      BuddyRequestStatus `json:"status"`
}

// Suggestion is a proposed checkpoint for a goal.
type Suggestion struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     valueobject.Date `json:"dueDate"`
}

// SuggestionList groups the proposals returned for one goal.
type SuggestionList struct {
	GoalID      uuid.UUID    `json:"goalId"`
	Suggestions []Suggestion `json:"suggestions"`
}
