// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/entity"
)

// CheckpointModel represents the checkpoints table in the database.
type CheckpointModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	GoalID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	DueDate       *time.Time
	Status        string `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CompletedDate *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the CheckpointModel.
func (CheckpointModel) TableName() string {
	return "checkpoints"
}

// ToEntity converts a CheckpointModel to a domain Checkpoint entity.
func (m *CheckpointModel) ToEntity() *entity.Checkpoint {
	cp := &entity.Checkpoint{
		ID:          m.ID,
		GoalID:      m.GoalID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     dateFromColumn(m.DueDate),
		Status:      entity.CheckpointStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.CompletedDate != nil {
		completed := dateFromColumn(m.CompletedDate)
		cp.CompletedDate = &completed
	}
	return cp
}

// CheckpointFromEntity creates a CheckpointModel from a domain Checkpoint entity.
func CheckpointFromEntity(cp *entity.Checkpoint) *CheckpointModel {
	m := &CheckpointModel{
		ID:          cp.ID,
		GoalID:      cp.GoalID,
		Title:       cp.Title,
		Description: cp.Description,
		DueDate:     dateToColumn(cp.DueDate),
		Status:      string(cp.Status),
		CreatedAt:   cp.CreatedAt,
		UpdatedAt:   cp.UpdatedAt,
	}
	if cp.CompletedDate != nil {
		m.CompletedDate = dateToColumn(*cp.CompletedDate)
	}
	return m
}
