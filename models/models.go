package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the system
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	Name        string    `json:"name"`
	Surnames    string    `json:"surnames"`
	Phone       string    `json:"phone"`
	Avatar      string    `json:"avatar"`
	IsAdmin     bool      `json:"is_admin" gorm:"default:false"`
	IsVerified  bool      `json:"is_verified" gorm:"default:false"`
	LastLoginAt time.Time `json:"last_login_at"`
	GoogleID    string    `gorm:"default:null" json:"google_id"`

	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:UserID"`
}

// Notification represents a broadcast message shown to all users
type Notification struct {
	gorm.Model
	Title   string `gorm:"uniqueIndex;not null" json:"title"`
	Message string `gorm:"not null" json:"message"`
}
