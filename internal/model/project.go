package model

import (
	"time"

	"github.com/google/uuid"
)

// ActionStatus is the lifecycle state of a project.
type ActionStatus int

const (
	ActionStatusOpen       ActionStatus = 0
	ActionStatusInProgress ActionStatus = 1
	ActionStatusCompleted  ActionStatus = 2
)

func (s ActionStatus) Valid() bool {
	switch s {
	case ActionStatusOpen, ActionStatusInProgress, ActionStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	Description  string       `json:"description"`
	Subject      string       `gorm:"not null" json:"subject"`
	ActionStatus ActionStatus `gorm:"not null;default:0" json:"action_status"`
	Deadline     time.Time    `gorm:"not null" json:"deadline"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Members []Membership `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tasks   []Task       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}
