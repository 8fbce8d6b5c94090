package service

import (
	"testing"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDriveServiceTest(t *testing.T) (TestDriveService, *model.User, *model.Car, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	testDriveRepo := repository.NewTestDriveRepository(testDB)
	carRepo := repository.NewCarRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)
	notifications := NewNotificationService(notificationRepo, nil)
	testDriveService := NewTestDriveService(testDriveRepo, carRepo, notifications)

	user := &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	company := &model.Company{
		Name:    "Test Motors",
		Country: "Germany",
	}
	testDB.Create(company)

	car := &model.Car{
		CompanyID: company.ID,
		Model:     "Roadster X",
		Year:      2023,
		Price:     45000,
		Color:     "red",
		FuelType:  model.FuelPetrol,
		Status:    model.CarStatusAvailable,
	}
	testDB.Create(car)

	return testDriveService, user, car, testDB
}

func testBookingInput(carID uint) BookTestDriveInput {
	return BookTestDriveInput{
		CarID: carID,
		Date:  "2026-09-15",
		Time:  "14:30",
		Notes: "prefer afternoon",
	}
}

func TestTestDriveService_Book_Success(t *testing.T) {
	testDriveService, user, car, _ := setupTestDriveServiceTest(t)

	testDrive, err := testDriveService.Book(user.ID, testBookingInput(car.ID))
	assert.NoError(t, err)
	assert.Equal(t, model.TestDriveStatusPending, testDrive.Status)
	assert.Equal(t, "2026-09-15", testDrive.Date)
}

func TestTestDriveService_Book_CarNotFound(t *testing.T) {
	testDriveService, user, _, _ := setupTestDriveServiceTest(t)

	_, err := testDriveService.Book(user.ID, testBookingInput(9999))
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestTestDriveService_Book_ReservedCar(t *testing.T) {
	testDriveService, user, car, testDB := setupTestDriveServiceTest(t)

	// Sellers demo reserved stock too
	testDB.Model(car).Update("status", model.CarStatusReserved)

	testDrive, err := testDriveService.Book(user.ID, testBookingInput(car.ID))
	assert.NoError(t, err)
	assert.Equal(t, model.TestDriveStatusPending, testDrive.Status)
}

func TestTestDriveService_Cancel_Owner(t *testing.T) {
	testDriveService, user, car, _ := setupTestDriveServiceTest(t)

	testDrive, err := testDriveService.Book(user.ID, testBookingInput(car.ID))
	require.NoError(t, err)

	cancelled, err := testDriveService.Cancel(user.ID, testDrive.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.TestDriveStatusCancelled, cancelled.Status)
}

func TestTestDriveService_Cancel_WrongUser(t *testing.T) {
	testDriveService, user, car, _ := setupTestDriveServiceTest(t)

	testDrive, err := testDriveService.Book(user.ID, testBookingInput(car.ID))
	require.NoError(t, err)

	_, err = testDriveService.Cancel(user.ID+1, testDrive.ID)
	assert.ErrorIs(t, err, ErrTestDriveNotFound)
}

func TestTestDriveService_UpdateStatus_FullLifecycle(t *testing.T) {
	testDriveService, user, car, _ := setupTestDriveServiceTest(t)

	testDrive, err := testDriveService.Book(user.ID, testBookingInput(car.ID))
	require.NoError(t, err)

	confirmed, err := testDriveService.UpdateStatus(testDrive.ID, model.TestDriveStatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, model.TestDriveStatusConfirmed, confirmed.Status)

	completed, err := testDriveService.UpdateStatus(testDrive.ID, model.TestDriveStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, model.TestDriveStatusCompleted, completed.Status)

	// Completed is terminal
	_, err = testDriveService.UpdateStatus(testDrive.ID, model.TestDriveStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTestDriveService_UpdateStatus_SkippingConfirm(t *testing.T) {
	testDriveService, user, car, _ := setupTestDriveServiceTest(t)

	testDrive, err := testDriveService.Book(user.ID, testBookingInput(car.ID))
	require.NoError(t, err)

	// pending -> completed skips confirmation
	_, err = testDriveService.UpdateStatus(testDrive.ID, model.TestDriveStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTestDriveService_GetCompanyTestDrives(t *testing.T) {
	testDriveService, user, car, testDB := setupTestDriveServiceTest(t)

	otherCompany := &model.Company{Name: "Other Motors", Country: "France"}
	testDB.Create(otherCompany)
	otherCar := &model.Car{
		CompanyID: otherCompany.ID,
		Model:     "City Car",
		Year:      2022,
		Price:     20000,
		Color:     "blue",
		FuelType:  model.FuelElectric,
		Status:    model.CarStatusAvailable,
	}
	testDB.Create(otherCar)

	_, err := testDriveService.Book(user.ID, testBookingInput(car.ID))
	require.NoError(t, err)
	_, err = testDriveService.Book(user.ID, testBookingInput(otherCar.ID))
	require.NoError(t, err)

	drives, err := testDriveService.GetCompanyTestDrives(car.CompanyID)
	assert.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, car.ID, drives[0].CarID)
}
