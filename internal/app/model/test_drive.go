package model

import (
	"time"

	"gorm.io/gorm"
)

type TestDriveStatus string

const (
	TestDriveStatusPending   TestDriveStatus = "pending"
	TestDriveStatusConfirmed TestDriveStatus = "confirmed"
	TestDriveStatusCompleted TestDriveStatus = "completed"
	TestDriveStatusCancelled TestDriveStatus = "cancelled"
)

// testDriveTransitions is the allowed-transition table for test drives.
// Completed and cancelled are terminal.
var testDriveTransitions = map[TestDriveStatus][]TestDriveStatus{
	TestDriveStatusPending:   {TestDriveStatusConfirmed, TestDriveStatusCancelled},
	TestDriveStatusConfirmed: {TestDriveStatusCompleted, TestDriveStatusCancelled},
}

// CanTransition reports whether moving from s to next is allowed
func (s TestDriveStatus) CanTransition(next TestDriveStatus) bool {
	for _, allowed := range testDriveTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidTestDriveStatus reports whether the value is one of the enumerated statuses
func ValidTestDriveStatus(s TestDriveStatus) bool {
	switch s {
	case TestDriveStatusPending, TestDriveStatusConfirmed, TestDriveStatusCompleted, TestDriveStatusCancelled:
		return true
	}
	return false
}

type TestDrive struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	CarID     uint            `gorm:"not null;index" json:"car_id"`
	Date      string          `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Time      string          `gorm:"type:varchar(5);not null" json:"time"`  // HH:MM
	Status    TestDriveStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Car  Car  `gorm:"foreignKey:CarID" json:"car,omitempty"`
}

func (TestDrive) TableName() string {
	return "test_drives"
}
