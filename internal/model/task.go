package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses and priorities applied when the client omits them.
const (
	TaskStatusDefault   = "todo"
	TaskPriorityDefault = "medium"
)

// Task is a unit of work owned by the user that created it. CreatedBy is
// stamped exactly once from the authenticated principal and is immutable
// afterwards.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Status      string     `json:"status" gorm:"size:50;not null;default:'todo'"`
	Priority    string     `json:"priority" gorm:"size:50;not null;default:'medium'"`
	Assignee    string     `json:"assignee,omitempty" gorm:"size:255"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets the UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
