package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the function a member performs inside a project.
type Role string

const (
	RoleBackend  Role = "BACKEND"
	RoleFrontend Role = "FRONTEND"
	RoleMobile   Role = "MOBILE"
	RoleDesign   Role = "DESIGN"
	RoleTesting  Role = "TESTING"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBackend, RoleFrontend, RoleMobile, RoleDesign, RoleTesting:
		return true
	}
	return false
}

// Membership links a user to a project. A project always has at least one
// owning membership; the pair (user, project) is unique.
type Membership struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_project" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_project" json:"project_id"`
	Role      Role      `gorm:"not null" json:"role"`
	IsOwner   bool      `gorm:"not null;default:false" json:"is_owner"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Membership) TableName() string {
	return "project_memberships"
}
