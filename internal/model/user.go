package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role labels the authorization level of a user.
type Role string

const (
	// RoleAdmin may act on any resource regardless of ownership.
	RoleAdmin Role = "admin"
	// RoleUser may act only on resources it created.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a registered account. The password hash never leaves the
// server; ProfileImagePath points at a stored upload when one was supplied
// at registration time.
type User struct {
	ID               uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name             string    `json:"name" gorm:"size:255;not null"`
	Email            string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string    `json:"-" gorm:"size:255;not null"`
	Role             Role      `json:"role" gorm:"size:50;not null;default:'user';index"`
	ProfileImagePath string    `json:"profile_image,omitempty" gorm:"size:512"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate sets the UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
