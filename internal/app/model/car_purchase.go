package model

import (
	"time"

	"gorm.io/gorm"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusPaid      PurchaseStatus = "paid"
	PurchaseStatusConfirmed PurchaseStatus = "confirmed"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// purchaseTransitions is the allowed-transition table for car purchases.
// Resolving a purchase does not touch the car row; the selling company
// marks the car sold or available separately.
var purchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	PurchaseStatusPending: {PurchaseStatusPaid, PurchaseStatusConfirmed, PurchaseStatusCancelled},
	PurchaseStatusPaid:    {PurchaseStatusConfirmed, PurchaseStatusCancelled},
}

// CanTransition reports whether moving from s to next is allowed
func (s PurchaseStatus) CanTransition(next PurchaseStatus) bool {
	for _, allowed := range purchaseTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidPurchaseStatus reports whether the value is one of the enumerated statuses
func ValidPurchaseStatus(s PurchaseStatus) bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusPaid, PurchaseStatusConfirmed, PurchaseStatusCancelled:
		return true
	}
	return false
}

type CarPurchase struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	CarID         uint           `gorm:"not null;index" json:"car_id"`
	TotalPrice    float64        `gorm:"not null" json:"total_price"` // car price at purchase time
	Status        PurchaseStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentMethod PaymentMethod  `gorm:"type:varchar(20)" json:"payment_method"`
	PaymentDate   *time.Time     `json:"payment_date,omitempty"`
	TransactionID string         `gorm:"type:varchar(100)" json:"transaction_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Car  Car  `gorm:"foreignKey:CarID" json:"car,omitempty"`
}

func (CarPurchase) TableName() string {
	return "car_purchases"
}
