package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type CarPurchaseRepository interface {
	FindByID(id uint) (*model.CarPurchase, error)
	FindByUserID(userID uint) ([]model.CarPurchase, error)
	FindByCompanyID(companyID uint) ([]model.CarPurchase, error)
	FindAll() ([]model.CarPurchase, error)
	Update(purchase *model.CarPurchase) error
	CountByCompanyID(companyID uint) (int64, error)
	Count() (int64, error)
	SumRevenue() (float64, error)
}

type carPurchaseRepository struct {
	db *gorm.DB
}

func NewCarPurchaseRepository(db *gorm.DB) CarPurchaseRepository {
	return &carPurchaseRepository{db: db}
}

func (r *carPurchaseRepository) FindByID(id uint) (*model.CarPurchase, error) {
	var purchase model.CarPurchase
	err := r.db.Preload("Car").Preload("Car.Company").First(&purchase, id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *carPurchaseRepository) FindByUserID(userID uint) ([]model.CarPurchase, error) {
	var purchases []model.CarPurchase
	err := r.db.Preload("Car").Preload("Car.Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		logger.Error("Failed to list car purchases", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return purchases, nil
}

func (r *carPurchaseRepository) FindByCompanyID(companyID uint) ([]model.CarPurchase, error) {
	var purchases []model.CarPurchase
	err := r.db.Preload("Car").
		Joins("JOIN cars ON cars.id = car_purchases.car_id").
		Where("cars.company_id = ?", companyID).
		Order("car_purchases.created_at DESC").
		Find(&purchases).Error
	if err != nil {
		logger.Error("Failed to list car purchases by company", err, map[string]interface{}{
			"company_id": companyID,
		})
		return nil, err
	}
	return purchases, nil
}

func (r *carPurchaseRepository) FindAll() ([]model.CarPurchase, error) {
	var purchases []model.CarPurchase
	err := r.db.Preload("Car").Preload("Car.Company").
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		logger.Error("Failed to list all car purchases", err, nil)
		return nil, err
	}
	return purchases, nil
}

func (r *carPurchaseRepository) Update(purchase *model.CarPurchase) error {
	if err := r.db.Save(purchase).Error; err != nil {
		logger.Error("Failed to update car purchase in database", err, map[string]interface{}{
			"purchase_id": purchase.ID,
		})
		return err
	}
	return nil
}

func (r *carPurchaseRepository) CountByCompanyID(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CarPurchase{}).
		Joins("JOIN cars ON cars.id = car_purchases.car_id").
		Where("cars.company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *carPurchaseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.CarPurchase{}).Count(&count).Error
	return count, err
}

func (r *carPurchaseRepository) SumRevenue() (float64, error) {
	var total float64
	err := r.db.Model(&model.CarPurchase{}).
		Where("status <> ?", model.PurchaseStatusCancelled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}
