package model

import (
	"time"

	"gorm.io/gorm"
)

type CompanyRequestStatus string

const (
	CompanyRequestPending  CompanyRequestStatus = "pending"
	CompanyRequestApproved CompanyRequestStatus = "approved"
	CompanyRequestRejected CompanyRequestStatus = "rejected"
)

// CompanyRequest is a prospective dealership's onboarding application.
// Status is write-once: pending moves to approved or rejected and stays there.
type CompanyRequest struct {
	ID                uint                 `gorm:"primarykey" json:"id"`
	CompanyName       string               `gorm:"not null" json:"company_name"`
	Country           string               `gorm:"not null" json:"country"`
	Description       string               `gorm:"type:text" json:"description"`
	EstablishedYear   *int                 `json:"established_year,omitempty"`
	ContactEmail      string               `gorm:"not null" json:"contact_email"`
	ContactPhone      string               `json:"contact_phone"`
	// Not unique: several applicants may ask for the same name; the conflict
	// is settled against the users table at approval time.
	RequestedUsername string               `gorm:"index;not null" json:"requested_username"`
	RequestedPassword string               `gorm:"not null" json:"-"` // bcrypt hash, copied to the provisioned user
	Status            CompanyRequestStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AdminNotes        string               `gorm:"type:text" json:"admin_notes"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	DeletedAt         gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (CompanyRequest) TableName() string {
	return "company_requests"
}

// Reviewed reports whether the request has reached a terminal status
func (r *CompanyRequest) Reviewed() bool {
	return r.Status != CompanyRequestPending
}
