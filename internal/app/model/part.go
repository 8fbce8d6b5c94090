package model

import (
	"time"

	"gorm.io/gorm"
)

type Part struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CompanyID   uint           `gorm:"not null;index" json:"company_id"`
	Name        string         `gorm:"not null" json:"name"`
	Category    string         `gorm:"index" json:"category"`
	Price       float64        `gorm:"not null" json:"price"`
	Stock       int            `gorm:"default:0" json:"stock"` // informational; never decremented by checkout
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Company        Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	CompatibleCars []Car   `gorm:"many2many:part_compatible_cars;" json:"compatible_cars,omitempty"`
}

func (Part) TableName() string {
	return "parts"
}
