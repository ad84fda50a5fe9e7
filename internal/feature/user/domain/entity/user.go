// Package entity defines the domain entities for the user feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered user account.
type User struct {
	// ID is assigned by the store on first persistence and is empty before that.
	ID string `gorm:"primaryKey;size:36"`

	Name string `gorm:"size:50;not null"`

	// Email is the natural key for lookup, update and delete.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:100;not null"`

	// Password is the bcrypt hash. Plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a UUID when the record has none.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
