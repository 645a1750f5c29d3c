package dto

import (
	"github.com/productivity-app/backend/internal/domain/entity"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// CreateBuddyRequest represents the request body for sending a buddy request.
// RequesterID defaults to the authenticated user.
type CreateBuddyRequest struct {
	RequesterID string `json:"requesterId,omitempty"`
	ReceiverID  string `json:"receiverId"`
}

// UpdateBuddyRequest carries the receiver's answer.
type UpdateBuddyRequest struct {
	Status string `json:"status" binding:"required"`
}

// BuddyRequestResponse represents a buddy request in API responses.
type BuddyRequestResponse struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requesterId"`
	ReceiverID  string           `json:"receiverId"`
	Date        valueobject.Date `json:"date"`
	Status      string           `json:"status"`
}

// ToBuddyRequestResponse converts a domain BuddyRequest entity to its DTO.
func ToBuddyRequestResponse(req *entity.BuddyRequest) BuddyRequestResponse {
	return BuddyRequestResponse{
		ID:          req.ID.String(),
		RequesterID: req.RequesterID.String(),
		ReceiverID:  req.ReceiverID.String(),
		Date:        req.Date,
		Status:      string(req.Status),
	}
}

// ToBuddyRequestListResponse converts buddy requests to a JSON array.
func ToBuddyRequestListResponse(reqs []*entity.BuddyRequest) []BuddyRequestResponse {
	out := make([]BuddyRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ToBuddyRequestResponse(r))
	}
	return out
}
