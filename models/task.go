package models

import (
	"time"

	"gorm.io/gorm"
)

// Task represents a single item on a user's task list
type Task struct {
	gorm.Model
	Title       string      `gorm:"uniqueIndex;not null" json:"title"`
	Description string      `json:"description"`
	DueDate     time.Time   `json:"due_date"`
	DueTime     string      `json:"due_time"`
	Done        bool        `json:"done" gorm:"default:false"`
	Image       string      `json:"image"`
	Labels      []TaskLabel `json:"labels,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	UserID      uint        `json:"user_id"`
	User        User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TaskLabel is a free-form tag attached to a task
type TaskLabel struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	TaskID uint   `json:"task_id" gorm:"index;not null"`
	Label  string `json:"label" gorm:"not null"`
}
