package model

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTestDrive      NotificationType = "test_drive"
	NotificationLoan           NotificationType = "loan"
	NotificationPurchase       NotificationType = "purchase"
	NotificationOrder          NotificationType = "order"
	NotificationCompanyRequest NotificationType = "company_request"
)

// Notification records a workflow status change for a user. Delivered over
// the websocket hub when the user is connected, listable over REST otherwise.
type Notification struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	UserID      uint             `gorm:"not null;index" json:"user_id"`
	Type        NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title       string           `gorm:"not null" json:"title"`
	Message     string           `gorm:"type:text" json:"message"`
	ReferenceID uint             `json:"reference_id"` // id of the entity the event concerns
	Read        bool             `gorm:"default:false;index" json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
