package model

import (
	"time"

	"gorm.io/gorm"
)

type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRejected LoanStatus = "rejected"
)

// loanTransitions is the allowed-transition table for loan applications.
// Approved and rejected are terminal.
var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusPending: {LoanStatusApproved, LoanStatusRejected},
}

// CanTransition reports whether moving from s to next is allowed
func (s LoanStatus) CanTransition(next LoanStatus) bool {
	for _, allowed := range loanTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidLoanStatus reports whether the value is one of the enumerated statuses
func ValidLoanStatus(s LoanStatus) bool {
	switch s {
	case LoanStatusPending, LoanStatusApproved, LoanStatusRejected:
		return true
	}
	return false
}

// LoanApplication carries an editability lock: Editable flips to false on
// the first company/admin review and never back. While locked, the applicant
// cannot change any field.
type LoanApplication struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	CarID            uint           `gorm:"not null;index" json:"car_id"`
	Amount           float64        `gorm:"not null" json:"amount"`
	DurationMonths   int            `gorm:"not null" json:"duration_months"`
	MonthlyIncome    float64        `gorm:"not null" json:"monthly_income"`
	EmploymentStatus string         `gorm:"type:varchar(100)" json:"employment_status"`
	Status           LoanStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AdminNotes       string         `gorm:"type:text" json:"admin_notes"`
	Editable         bool           `gorm:"default:true" json:"editable"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Car  Car  `gorm:"foreignKey:CarID" json:"car,omitempty"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}
