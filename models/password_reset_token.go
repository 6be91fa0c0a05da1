package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetToken stores the hashed form of a reset token. The raw
// token only ever travels in the email link and is never persisted.
type PasswordResetToken struct {
	gorm.Model
	TokenHash string    `gorm:"uniqueIndex;not null"`
	UserID    uint      `gorm:"not null"`
	User      User      `gorm:"foreignKey:UserID"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
}
