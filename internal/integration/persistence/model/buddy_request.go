// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/entity"
)

// BuddyRequestModel represents the buddy_requests table in the database.
type BuddyRequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Date        *time.Time
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the BuddyRequestModel.
func (BuddyRequestModel) TableName() string {
	return "buddy_requests"
}

// ToEntity converts a BuddyRequestModel to a domain BuddyRequest entity.
func (m *BuddyRequestModel) ToEntity() *entity.BuddyRequest {
	return &entity.BuddyRequest{
		ID:          m.ID,
		RequesterID: m.RequesterID,
		ReceiverID:  m.ReceiverID,
		Date:        dateFromColumn(m.Date),
		Status:      entity.BuddyRequestStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// BuddyRequestFromEntity creates a BuddyRequestModel from a domain BuddyRequest entity.
func BuddyRequestFromEntity(req *entity.BuddyRequest) *BuddyRequestModel {
	return &BuddyRequestModel{
		ID:          req.ID,
		RequesterID: req.RequesterID,
		ReceiverID:  req.ReceiverID,
		Date:        dateToColumn(req.Date),
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}
