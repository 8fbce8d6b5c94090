package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type CompanyRequestRepository interface {
	Create(request *model.CompanyRequest) error
	FindByID(id uint) (*model.CompanyRequest, error)
	FindAll() ([]model.CompanyRequest, error)
	Update(request *model.CompanyRequest) error
	CountPending() (int64, error)
}

type companyRequestRepository struct {
	db *gorm.DB
}

func NewCompanyRequestRepository(db *gorm.DB) CompanyRequestRepository {
	return &companyRequestRepository{db: db}
}

func (r *companyRequestRepository) Create(request *model.CompanyRequest) error {
	logger.Debug("Creating company request in database", map[string]interface{}{
		"company_name":       request.CompanyName,
		"requested_username": request.RequestedUsername,
	})

	if err := r.db.Create(request).Error; err != nil {
		logger.Error("Failed to create company request in database", err, map[string]interface{}{
			"company_name": request.CompanyName,
		})
		return err
	}
	return nil
}

func (r *companyRequestRepository) FindByID(id uint) (*model.CompanyRequest, error) {
	var request model.CompanyRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *companyRequestRepository) FindAll() ([]model.CompanyRequest, error) {
	var requests []model.CompanyRequest
	if err := r.db.Order("created_at DESC").Find(&requests).Error; err != nil {
		logger.Error("Failed to list company requests", err, nil)
		return nil, err
	}
	return requests, nil
}

func (r *companyRequestRepository) Update(request *model.CompanyRequest) error {
	if err := r.db.Save(request).Error; err != nil {
		logger.Error("Failed to update company request in database", err, map[string]interface{}{
			"request_id": request.ID,
		})
		return err
	}
	return nil
}

func (r *companyRequestRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.CompanyRequest{}).
		Where("status = ?", model.CompanyRequestPending).
		Count(&count).Error
	return count, err
}
