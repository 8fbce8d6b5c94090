package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type LoanRepository interface {
	Create(loan *model.LoanApplication) error
	FindByID(id uint) (*model.LoanApplication, error)
	FindByUserID(userID uint) ([]model.LoanApplication, error)
	FindByCompanyID(companyID uint) ([]model.LoanApplication, error)
	FindAll() ([]model.LoanApplication, error)
	Update(loan *model.LoanApplication) error
	CountPending() (int64, error)
}

type loanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(loan *model.LoanApplication) error {
	logger.Debug("Creating loan application in database", map[string]interface{}{
		"user_id": loan.UserID,
		"car_id":  loan.CarID,
		"amount":  loan.Amount,
	})

	if err := r.db.Create(loan).Error; err != nil {
		logger.Error("Failed to create loan application in database", err, map[string]interface{}{
			"user_id": loan.UserID,
			"car_id":  loan.CarID,
		})
		return err
	}
	return nil
}

func (r *loanRepository) FindByID(id uint) (*model.LoanApplication, error) {
	var loan model.LoanApplication
	err := r.db.Preload("Car").Preload("Car.Company").First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) FindByUserID(userID uint) ([]model.LoanApplication, error) {
	var loans []model.LoanApplication
	err := r.db.Preload("Car").Preload("Car.Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&loans).Error
	if err != nil {
		logger.Error("Failed to list loan applications", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) FindByCompanyID(companyID uint) ([]model.LoanApplication, error) {
	var loans []model.LoanApplication
	err := r.db.Preload("Car").
		Joins("JOIN cars ON cars.id = loan_applications.car_id").
		Where("cars.company_id = ?", companyID).
		Order("loan_applications.created_at DESC").
		Find(&loans).Error
	if err != nil {
		logger.Error("Failed to list loan applications by company", err, map[string]interface{}{
			"company_id": companyID,
		})
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) FindAll() ([]model.LoanApplication, error) {
	var loans []model.LoanApplication
	err := r.db.Preload("Car").Preload("Car.Company").
		Order("created_at DESC").
		Find(&loans).Error
	if err != nil {
		logger.Error("Failed to list all loan applications", err, nil)
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) Update(loan *model.LoanApplication) error {
	if err := r.db.Save(loan).Error; err != nil {
		logger.Error("Failed to update loan application in database", err, map[string]interface{}{
			"loan_id": loan.ID,
		})
		return err
	}
	return nil
}

func (r *loanRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.LoanApplication{}).
		Where("status = ?", model.LoanStatusPending).
		Count(&count).Error
	return count, err
}
