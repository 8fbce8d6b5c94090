package model

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one line of a user's cart. The cart itself is implicit:
// it is the set of the user's items, created lazily on first add.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	PartID    uint           `gorm:"not null;index" json:"part_id"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Part Part `gorm:"foreignKey:PartID" json:"part,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal is the line total at the part's current price
func (i *CartItem) Subtotal() float64 {
	return i.Part.Price * float64(i.Quantity)
}
