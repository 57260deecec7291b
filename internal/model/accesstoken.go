package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken backs a bearer token. The token itself is a signed JWT whose
// jti is this row's ID; deleting the row revokes the token.
type AccessToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
