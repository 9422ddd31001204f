package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle is a registered vehicle record. UserID is stamped once at creation
// from the authenticated principal; updates require the admin role regardless
// of who created the record.
type Vehicle struct {
	ID        uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID     `json:"user_id" gorm:"type:char(36);not null;index"`
	Make      string        `json:"make" gorm:"size:255;not null"`
	Model     string        `json:"model" gorm:"size:255;not null"`
	Year      string        `json:"year" gorm:"size:10;not null"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relations
	Files []VehicleFile `json:"files,omitempty" gorm:"foreignKey:VehicleID"`
}

// VehicleFile records one stored attachment path for a vehicle.
type VehicleFile struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	VehicleID uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Path      string    `json:"path" gorm:"size:512;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets the UUID before creating the record.
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// BeforeCreate sets the UUID before creating the record.
func (f *VehicleFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
