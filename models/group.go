package models

import "gorm.io/gorm"

// Group represents a team of users managed by an admin user
type Group struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	AdminID     uint   `json:"admin_id"`
	Admin       User   `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
	Members     []User `json:"members,omitempty" gorm:"many2many:group_members"`
}
