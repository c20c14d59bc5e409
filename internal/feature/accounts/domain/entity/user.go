// Package entity defines the domain entities for the accounts feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user in the system.
// It contains authentication credentials and metadata for account management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the user's display name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:80;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:120;not null"`

	// PasswordHash is the bcrypt digest of the user's password.
	// This should never store plaintext passwords.
	PasswordHash string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user registered (UTC).
	CreatedAt time.Time

	// IsActive marks whether the account is active. It is persisted with a
	// default of true and reserved for a future deactivation flow; no login
	// path consults it today.
	IsActive bool `gorm:"not null;default:true"`
}

// TableName sets the storage table name for User records.
func (User) TableName() string {
	return "users"
}

// BeforeCreate pins the registration timestamp to UTC.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return nil
}
