package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(company *model.Company) error
	FindByID(id uint) (*model.Company, error)
	FindByUserID(userID uint) (*model.Company, error)
	FindAll() ([]model.Company, error)
	Update(company *model.Company) error
	Count() (int64, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *model.Company) error {
	logger.Debug("Creating company in database", map[string]interface{}{
		"name":    company.Name,
		"country": company.Country,
	})

	if err := r.db.Create(company).Error; err != nil {
		logger.Error("Failed to create company in database", err, map[string]interface{}{
			"name": company.Name,
		})
		return err
	}
	return nil
}

func (r *companyRepository) FindByID(id uint) (*model.Company, error) {
	var company model.Company
	err := r.db.First(&company, id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByUserID resolves the acting company from a principal. Workflow code
// must use this instead of trusting a client-supplied company id.
func (r *companyRepository) FindByUserID(userID uint) (*model.Company, error) {
	var company model.Company
	err := r.db.Where("user_id = ?", userID).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindAll() ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.Order("name ASC").Find(&companies).Error; err != nil {
		logger.Error("Failed to list companies", err, nil)
		return nil, err
	}
	return companies, nil
}

func (r *companyRepository) Update(company *model.Company) error {
	if err := r.db.Save(company).Error; err != nil {
		logger.Error("Failed to update company in database", err, map[string]interface{}{
			"company_id": company.ID,
		})
		return err
	}
	return nil
}

func (r *companyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Company{}).Count(&count).Error
	return count, err
}
