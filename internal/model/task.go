package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the completion state of a task.
type TaskStatus int

const (
	TaskStatusTodo       TaskStatus = 0
	TaskStatusInProgress TaskStatus = 1
	TaskStatusDone       TaskStatus = 2
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task belongs to a project and optionally to a parent task in the same
// project, forming a tree. The owner must hold a membership on the project.
type Task struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	ParentTaskID *uuid.UUID `gorm:"type:uuid;index" json:"parent_task_id"`
	OwnerID      uuid.UUID  `gorm:"type:uuid;not null" json:"owner_id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description"`
	Status       TaskStatus `gorm:"not null;default:0" json:"status"`
	Deadline     *time.Time `json:"deadline"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Owner    User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Subtasks []Task `gorm:"foreignKey:ParentTaskID;constraint:OnDelete:CASCADE" json:"subtasks,omitempty"`
}
