package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser    UserRole = "user"    // regular buyer
	RoleCompany UserRole = "company" // dealership staff account, linked 1:1 to a Company
	RoleAdmin   UserRole = "admin"   // platform administrator, never linked to a Company
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"index" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Company *Company `gorm:"foreignKey:UserID" json:"company,omitempty"`
}

func (User) TableName() string {
	return "users"
}
