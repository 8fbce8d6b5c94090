package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

// CarFilter narrows public catalog queries. Search matches the car model,
// the selling company's name and the color, case-insensitively.
type CarFilter struct {
	Search    string
	CompanyID *uint
	Status    *model.CarStatus
}

type CarRepository interface {
	Create(car *model.Car) error
	BulkCreate(cars []model.Car, batchSize int) error
	FindByID(id uint) (*model.Car, error)
	FindByCompanyID(companyID uint) ([]model.Car, error)
	Search(filter CarFilter) ([]model.Car, error)
	Update(car *model.Car) error
	Delete(id uint) error
	CountByCompanyID(companyID uint) (int64, error)
	CountByCompanyIDAndStatus(companyID uint, status model.CarStatus) (int64, error)
}

type carRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(car *model.Car) error {
	logger.Debug("Creating car in database", map[string]interface{}{
		"company_id": car.CompanyID,
		"model":      car.Model,
	})

	if err := r.db.Create(car).Error; err != nil {
		logger.Error("Failed to create car in database", err, map[string]interface{}{
			"company_id": car.CompanyID,
			"model":      car.Model,
		})
		return err
	}
	return nil
}

// BulkCreate inserts cars in batches. Used by the catalog import command.
func (r *carRepository) BulkCreate(cars []model.Car, batchSize int) error {
	if err := r.db.CreateInBatches(cars, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create cars", err, map[string]interface{}{
			"count": len(cars),
		})
		return err
	}
	return nil
}

func (r *carRepository) FindByID(id uint) (*model.Car, error) {
	var car model.Car
	err := r.db.Preload("Company").First(&car, id).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) FindByCompanyID(companyID uint) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		logger.Error("Failed to list cars by company", err, map[string]interface{}{
			"company_id": companyID,
		})
		return nil, err
	}
	return cars, nil
}

func (r *carRepository) Search(filter CarFilter) ([]model.Car, error) {
	query := r.db.Model(&model.Car{}).
		Joins("Company").
		Order("cars.created_at DESC")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(cars.model) LIKE LOWER(?) OR LOWER(\"Company\".name) LIKE LOWER(?) OR LOWER(cars.color) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if filter.CompanyID != nil {
		query = query.Where("cars.company_id = ?", *filter.CompanyID)
	}
	if filter.Status != nil {
		query = query.Where("cars.status = ?", *filter.Status)
	}

	var cars []model.Car
	if err := query.Find(&cars).Error; err != nil {
		logger.Error("Failed to search cars", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}
	return cars, nil
}

func (r *carRepository) Update(car *model.Car) error {
	if err := r.db.Save(car).Error; err != nil {
		logger.Error("Failed to update car in database", err, map[string]interface{}{
			"car_id": car.ID,
		})
		return err
	}
	return nil
}

func (r *carRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Car{}, id).Error; err != nil {
		logger.Error("Failed to delete car from database", err, map[string]interface{}{
			"car_id": id,
		})
		return err
	}
	return nil
}

func (r *carRepository) CountByCompanyID(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Car{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

func (r *carRepository) CountByCompanyIDAndStatus(companyID uint, status model.CarStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Car{}).
		Where("company_id = ? AND status = ?", companyID, status).
		Count(&count).Error
	return count, err
}
