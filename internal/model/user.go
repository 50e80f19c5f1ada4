package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == Student || r == Admin
}

// swagger:model User
type User struct {
	BaseModel
	Name       string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Email      string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"size:20;not null;default:'student'" json:"role"`
	LastActive time.Time `json:"lastActive"`
}

func (User) TableName() string {
	return "users"
}
