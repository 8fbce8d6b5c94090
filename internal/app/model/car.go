package model

import (
	"time"

	"gorm.io/gorm"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

type CarStatus string

const (
	CarStatusAvailable CarStatus = "available"
	CarStatusReserved  CarStatus = "reserved"
	CarStatusSold      CarStatus = "sold"
)

type Car struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CompanyID   uint           `gorm:"not null;index" json:"company_id"`
	Model       string         `gorm:"not null" json:"model"`
	Year        int            `gorm:"not null" json:"year"`
	Price       float64        `gorm:"not null" json:"price"`
	Color       string         `json:"color"`
	FuelType    FuelType       `gorm:"type:varchar(20)" json:"fuel_type"`
	Mileage     int            `json:"mileage"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	Status      CarStatus      `gorm:"type:varchar(20);default:'available';index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (Car) TableName() string {
	return "cars"
}

// ValidFuelType reports whether the value is one of the enumerated fuel types
func ValidFuelType(f FuelType) bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

// ValidCarStatus reports whether the value is one of the enumerated statuses
func ValidCarStatus(s CarStatus) bool {
	switch s {
	case CarStatusAvailable, CarStatusReserved, CarStatusSold:
		return true
	}
	return false
}
