package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type TestDriveRepository interface {
	Create(testDrive *model.TestDrive) error
	FindByID(id uint) (*model.TestDrive, error)
	FindByUserID(userID uint) ([]model.TestDrive, error)
	FindByCompanyID(companyID uint) ([]model.TestDrive, error)
	FindAll() ([]model.TestDrive, error)
	Update(testDrive *model.TestDrive) error
	CountPendingByCompanyID(companyID uint) (int64, error)
}

type testDriveRepository struct {
	db *gorm.DB
}

func NewTestDriveRepository(db *gorm.DB) TestDriveRepository {
	return &testDriveRepository{db: db}
}

func (r *testDriveRepository) Create(testDrive *model.TestDrive) error {
	logger.Debug("Creating test drive in database", map[string]interface{}{
		"user_id": testDrive.UserID,
		"car_id":  testDrive.CarID,
		"date":    testDrive.Date,
	})

	if err := r.db.Create(testDrive).Error; err != nil {
		logger.Error("Failed to create test drive in database", err, map[string]interface{}{
			"user_id": testDrive.UserID,
			"car_id":  testDrive.CarID,
		})
		return err
	}
	return nil
}

func (r *testDriveRepository) FindByID(id uint) (*model.TestDrive, error) {
	var testDrive model.TestDrive
	err := r.db.Preload("Car").Preload("Car.Company").First(&testDrive, id).Error
	if err != nil {
		return nil, err
	}
	return &testDrive, nil
}

func (r *testDriveRepository) FindByUserID(userID uint) ([]model.TestDrive, error) {
	var testDrives []model.TestDrive
	err := r.db.Preload("Car").Preload("Car.Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&testDrives).Error
	if err != nil {
		logger.Error("Failed to list test drives", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return testDrives, nil
}

func (r *testDriveRepository) FindByCompanyID(companyID uint) ([]model.TestDrive, error) {
	var testDrives []model.TestDrive
	err := r.db.Preload("Car").
		Joins("JOIN cars ON cars.id = test_drives.car_id").
		Where("cars.company_id = ?", companyID).
		Order("test_drives.created_at DESC").
		Find(&testDrives).Error
	if err != nil {
		logger.Error("Failed to list test drives by company", err, map[string]interface{}{
			"company_id": companyID,
		})
		return nil, err
	}
	return testDrives, nil
}

func (r *testDriveRepository) FindAll() ([]model.TestDrive, error) {
	var testDrives []model.TestDrive
	err := r.db.Preload("Car").Preload("Car.Company").
		Order("created_at DESC").
		Find(&testDrives).Error
	if err != nil {
		logger.Error("Failed to list all test drives", err, nil)
		return nil, err
	}
	return testDrives, nil
}

func (r *testDriveRepository) Update(testDrive *model.TestDrive) error {
	if err := r.db.Save(testDrive).Error; err != nil {
		logger.Error("Failed to update test drive in database", err, map[string]interface{}{
			"test_drive_id": testDrive.ID,
		})
		return err
	}
	return nil
}

func (r *testDriveRepository) CountPendingByCompanyID(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.TestDrive{}).
		Joins("JOIN cars ON cars.id = test_drives.car_id").
		Where("cars.company_id = ? AND test_drives.status = ?", companyID, model.TestDriveStatusPending).
		Count(&count).Error
	return count, err
}
