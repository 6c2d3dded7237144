package user

import (
	"time"
)

// User represents a registered account. Email is stored lower-cased so
// uniqueness and lookups are case-insensitive through a plain indexed
// equality match.
//
// PasswordHash never leaves the process: the json tag excludes it from every
// serialized view of the user.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"size:30;not null" json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims represents the identity carried by a verified session token.
type Claims struct {
	UserID string `json:"user_id"`
}
