// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/entity"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	StartDate   *time.Time
	EndDate     *time.Time
	Progress    int       `gorm:"not null;default:0"`
	Status      string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		StartDate:   dateFromColumn(m.StartDate),
		EndDate:     dateFromColumn(m.EndDate),
		Progress:    m.Progress,
		Status:      entity.GoalStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:          goal.ID,
		UserID:      goal.UserID,
		Title:       goal.Title,
		Description: goal.Description,
		StartDate:   dateToColumn(goal.StartDate),
		EndDate:     dateToColumn(goal.EndDate),
		Progress:    goal.Progress,
		Status:      string(goal.Status),
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

// dateToColumn stores zero dates as NULL.
func dateToColumn(d valueobject.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func dateFromColumn(t *time.Time) valueobject.Date {
	if t == nil {
		return valueobject.Date{}
	}
	return valueobject.NewDate(t.UTC())
}
