package model

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          *uint          `gorm:"uniqueIndex" json:"user_id,omitempty"` // owning login, one per company
	Name            string         `gorm:"not null" json:"name"`
	Country         string         `gorm:"not null" json:"country"`
	Description     string         `gorm:"type:text" json:"description"`
	LogoURL         string         `json:"logo_url"`
	EstablishedYear *int           `json:"established_year,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Cars  []Car  `gorm:"foreignKey:CompanyID" json:"cars,omitempty"`
	Parts []Part `gorm:"foreignKey:CompanyID" json:"parts,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}
