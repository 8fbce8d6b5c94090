package service

import (
	"errors"
	"fmt"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrTestDriveNotFound = errors.New("test drive not found")

type BookTestDriveInput struct {
	CarID uint
	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

type TestDriveService interface {
	Book(userID uint, input BookTestDriveInput) (*model.TestDrive, error)
	GetUserTestDrives(userID uint) ([]model.TestDrive, error)
	GetCompanyTestDrives(companyID uint) ([]model.TestDrive, error)
	GetAllTestDrives() ([]model.TestDrive, error)
	Cancel(userID uint, testDriveID uint) (*model.TestDrive, error)
	UpdateStatus(testDriveID uint, status model.TestDriveStatus) (*model.TestDrive, error)
}

type testDriveService struct {
	testDriveRepo repository.TestDriveRepository
	carRepo       repository.CarRepository
	notifications NotificationService
}

func NewTestDriveService(testDriveRepo repository.TestDriveRepository, carRepo repository.CarRepository, notifications NotificationService) TestDriveService {
	return &testDriveService{
		testDriveRepo: testDriveRepo,
		carRepo:       carRepo,
		notifications: notifications,
	}
}

// Book schedules a test drive for any car on the platform, whatever its
// status. Sellers routinely demo reserved and sold stock.
func (s *testDriveService) Book(userID uint, input BookTestDriveInput) (*model.TestDrive, error) {
	if _, err := s.carRepo.FindByID(input.CarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	testDrive := &model.TestDrive{
		UserID: userID,
		CarID:  input.CarID,
		Date:   input.Date,
		Time:   input.Time,
		Status: model.TestDriveStatusPending,
		Notes:  input.Notes,
	}

	if err := s.testDriveRepo.Create(testDrive); err != nil {
		return nil, err
	}

	logger.Info("Test drive booked", map[string]interface{}{
		"test_drive_id": testDrive.ID,
		"user_id":       userID,
		"car_id":        input.CarID,
		"date":          input.Date,
	})
	return testDrive, nil
}

func (s *testDriveService) GetUserTestDrives(userID uint) ([]model.TestDrive, error) {
	return s.testDriveRepo.FindByUserID(userID)
}

func (s *testDriveService) GetCompanyTestDrives(companyID uint) ([]model.TestDrive, error) {
	return s.testDriveRepo.FindByCompanyID(companyID)
}

func (s *testDriveService) GetAllTestDrives() ([]model.TestDrive, error) {
	return s.testDriveRepo.FindAll()
}

func (s *testDriveService) Cancel(userID uint, testDriveID uint) (*model.TestDrive, error) {
	testDrive, err := s.testDriveRepo.FindByID(testDriveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestDriveNotFound
		}
		return nil, err
	}
	if testDrive.UserID != userID {
		return nil, ErrTestDriveNotFound
	}

	if !testDrive.Status.CanTransition(model.TestDriveStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	testDrive.Status = model.TestDriveStatusCancelled
	if err := s.testDriveRepo.Update(testDrive); err != nil {
		return nil, err
	}

	logger.Info("Test drive cancelled", map[string]interface{}{
		"test_drive_id": testDriveID,
		"user_id":       userID,
	})
	return testDrive, nil
}

// UpdateStatus is the seller-side transition (company or admin at the router).
func (s *testDriveService) UpdateStatus(testDriveID uint, status model.TestDriveStatus) (*model.TestDrive, error) {
	testDrive, err := s.testDriveRepo.FindByID(testDriveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestDriveNotFound
		}
		return nil, err
	}

	if !testDrive.Status.CanTransition(status) {
		logger.Warn("Rejected test drive status transition", map[string]interface{}{
			"test_drive_id": testDriveID,
			"from":          testDrive.Status,
			"to":            status,
		})
		return nil, ErrInvalidTransition
	}

	testDrive.Status = status
	if err := s.testDriveRepo.Update(testDrive); err != nil {
		return nil, err
	}

	logger.Info("Test drive status updated", map[string]interface{}{
		"test_drive_id": testDriveID,
		"status":        status,
	})

	s.notifications.Notify(testDrive.UserID, model.NotificationTestDrive,
		"Test drive updated",
		fmt.Sprintf("Your test drive on %s at %s is now %s.", testDrive.Date, testDrive.Time, status),
		testDrive.ID)
	return testDrive, nil
}
