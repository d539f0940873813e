package models

import (
	"time"
)

type User struct {
	ID           string  `gorm:"primaryKey;size:36"` // UUID
	Email        string  `gorm:"uniqueIndex;not null"`
	Username     *string `gorm:"uniqueIndex"`
	PasswordHash string  `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the username when set, the email otherwise
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}
