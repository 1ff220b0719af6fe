package models

import "time"

// Session stores user login sessions (for logout, invalidation, audit).
// Multiple devices may hold live sessions for the same username.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // UUID
	Username  string    `gorm:"size:64;index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time
}
