package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentUPI          PaymentMethod = "upi"
)

// orderTransitions is the allowed-transition table for part orders
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition reports whether moving from s to next is allowed
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether the value is one of the enumerated statuses
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether the value is one of the enumerated methods
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentUPI:
		return true
	}
	return false
}

type PartOrder struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentMethod   PaymentMethod  `gorm:"type:varchar(20)" json:"payment_method"`
	PaymentDate     *time.Time     `json:"payment_date,omitempty"`
	TransactionID   string         `gorm:"type:varchar(100)" json:"transaction_id"`
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User  User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []PartOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (PartOrder) TableName() string {
	return "part_orders"
}

// PartOrderItem is an immutable order line. Price is copied from the part
// at checkout time and never changes afterwards.
type PartOrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	PartID    uint           `gorm:"not null;index" json:"part_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Price     float64        `gorm:"not null" json:"price"` // frozen unit price
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order PartOrder `gorm:"foreignKey:OrderID" json:"-"`
	Part  Part      `gorm:"foreignKey:PartID" json:"part,omitempty"`
}

func (PartOrderItem) TableName() string {
	return "part_order_items"
}

// Subtotal is the frozen line total
func (i *PartOrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
