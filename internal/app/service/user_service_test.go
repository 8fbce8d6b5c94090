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

func setupUserServiceTest(t *testing.T) (UserService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userService := NewUserService(
		repository.NewUserRepository(testDB),
		repository.NewPartOrderRepository(testDB),
		repository.NewCarPurchaseRepository(testDB),
		repository.NewTestDriveRepository(testDB),
		repository.NewLoanRepository(testDB),
	)
	return userService, testDB
}

func TestUserService_ListUsers_BuyersOnly(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	testDB.Create(&model.User{Username: "buyer", Email: "buyer@example.com", PasswordHash: "hash", Role: model.RoleUser})
	testDB.Create(&model.User{Username: "dealer", Email: "dealer@example.com", PasswordHash: "hash", Role: model.RoleCompany})

	users, err := userService.ListUsers("")
	assert.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "buyer", users[0].Username)
}

func TestUserService_GetUserActivity(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	buyer := &model.User{Username: "buyer", Email: "buyer@example.com", PasswordHash: "hash", Role: model.RoleUser}
	testDB.Create(buyer)

	company := &model.Company{Name: "Sunrise Motors", Country: "Germany"}
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

	testDB.Create(&model.CarPurchase{UserID: buyer.ID, CarID: car.ID, TotalPrice: 45000, Status: model.PurchaseStatusPending, PaymentMethod: model.PaymentCard})
	testDB.Create(&model.TestDrive{UserID: buyer.ID, CarID: car.ID, Date: "2026-09-15", Time: "14:30", Status: model.TestDriveStatusPending})

	activity, err := userService.GetUserActivity(buyer.ID)
	assert.NoError(t, err)
	assert.Equal(t, buyer.ID, activity.User.ID)
	assert.Len(t, activity.Purchases, 1)
	assert.Len(t, activity.TestDrives, 1)
	assert.Empty(t, activity.Orders)
	assert.Empty(t, activity.Loans)
}

func TestUserService_GetUserActivity_NotFound(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	_, err := userService.GetUserActivity(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
