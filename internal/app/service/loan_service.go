package service

import (
	"errors"
	"fmt"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrLoanNotFound = errors.New("loan application not found")
	ErrLoanLocked   = errors.New("loan application is locked")
)

type LoanInput struct {
	CarID            uint
	Amount           float64
	DurationMonths   int
	MonthlyIncome    float64
	EmploymentStatus string
}

type LoanService interface {
	Apply(userID uint, input LoanInput) (*model.LoanApplication, error)
	GetUserLoans(userID uint) ([]model.LoanApplication, error)
	GetLoan(userID uint, loanID uint) (*model.LoanApplication, error)
	Edit(userID uint, loanID uint, input LoanInput) (*model.LoanApplication, error)
	GetCompanyLoans(companyID uint) ([]model.LoanApplication, error)
	GetAllLoans() ([]model.LoanApplication, error)
	Review(loanID uint, status model.LoanStatus, adminNotes string) (*model.LoanApplication, error)
}

type loanService struct {
	loanRepo      repository.LoanRepository
	carRepo       repository.CarRepository
	notifications NotificationService
}

func NewLoanService(loanRepo repository.LoanRepository, carRepo repository.CarRepository, notifications NotificationService) LoanService {
	return &loanService{
		loanRepo:      loanRepo,
		carRepo:       carRepo,
		notifications: notifications,
	}
}

func (s *loanService) Apply(userID uint, input LoanInput) (*model.LoanApplication, error) {
	if _, err := s.carRepo.FindByID(input.CarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	loan := &model.LoanApplication{
		UserID:           userID,
		CarID:            input.CarID,
		Amount:           input.Amount,
		DurationMonths:   input.DurationMonths,
		MonthlyIncome:    input.MonthlyIncome,
		EmploymentStatus: input.EmploymentStatus,
		Status:           model.LoanStatusPending,
		Editable:         true,
	}

	if err := s.loanRepo.Create(loan); err != nil {
		return nil, err
	}

	logger.Info("Loan application submitted", map[string]interface{}{
		"loan_id": loan.ID,
		"user_id": userID,
		"car_id":  input.CarID,
		"amount":  input.Amount,
	})
	return loan, nil
}

func (s *loanService) GetUserLoans(userID uint) ([]model.LoanApplication, error) {
	return s.loanRepo.FindByUserID(userID)
}

func (s *loanService) GetLoan(userID uint, loanID uint) (*model.LoanApplication, error) {
	loan, err := s.loanRepo.FindByID(loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if loan.UserID != userID {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

// Edit updates an application the reviewer has not picked up yet. Once a
// review locks the application, edits are an authorization failure rather
// than a validation one: the decision was made on the submitted figures.
func (s *loanService) Edit(userID uint, loanID uint, input LoanInput) (*model.LoanApplication, error) {
	loan, err := s.GetLoan(userID, loanID)
	if err != nil {
		return nil, err
	}

	if !loan.Editable {
		logger.Warn("Rejected edit of locked loan application", map[string]interface{}{
			"loan_id": loanID,
			"user_id": userID,
		})
		return nil, ErrLoanLocked
	}

	loan.Amount = input.Amount
	loan.DurationMonths = input.DurationMonths
	loan.MonthlyIncome = input.MonthlyIncome
	loan.EmploymentStatus = input.EmploymentStatus

	if err := s.loanRepo.Update(loan); err != nil {
		return nil, err
	}

	logger.Info("Loan application updated", map[string]interface{}{
		"loan_id": loanID,
		"user_id": userID,
	})
	return loan, nil
}

func (s *loanService) GetCompanyLoans(companyID uint) ([]model.LoanApplication, error) {
	return s.loanRepo.FindByCompanyID(companyID)
}

func (s *loanService) GetAllLoans() ([]model.LoanApplication, error) {
	return s.loanRepo.FindAll()
}

// Review decides a pending application and locks it against further edits.
// The lock flips once and never back.
func (s *loanService) Review(loanID uint, status model.LoanStatus, adminNotes string) (*model.LoanApplication, error) {
	loan, err := s.loanRepo.FindByID(loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	if !loan.Status.CanTransition(status) {
		logger.Warn("Rejected loan status transition", map[string]interface{}{
			"loan_id": loanID,
			"from":    loan.Status,
			"to":      status,
		})
		return nil, ErrInvalidTransition
	}

	loan.Status = status
	loan.AdminNotes = adminNotes
	loan.Editable = false

	if err := s.loanRepo.Update(loan); err != nil {
		return nil, err
	}

	logger.Info("Loan application reviewed", map[string]interface{}{
		"loan_id": loanID,
		"status":  status,
	})

	s.notifications.Notify(loan.UserID, model.NotificationLoan,
		"Loan application reviewed",
		fmt.Sprintf("Your loan application #%d has been %s.", loan.ID, status),
		loan.ID)
	return loan, nil
}
