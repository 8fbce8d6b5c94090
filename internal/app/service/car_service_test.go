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

func setupCarServiceTest(t *testing.T) (CarService, *model.User, *model.Company, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	carRepo := repository.NewCarRepository(testDB)
	companyRepo := repository.NewCompanyRepository(testDB)
	carService := NewCarService(carRepo, companyRepo)

	seller := &model.User{
		Username:     "seller",
		Email:        "seller@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCompany,
	}
	testDB.Create(seller)

	company := &model.Company{
		UserID:  &seller.ID,
		Name:    "Test Motors",
		Country: "Germany",
	}
	testDB.Create(company)

	return carService, seller, company, testDB
}

func testCarInput() CarInput {
	return CarInput{
		Model:    "Roadster X",
		Year:     2023,
		Price:    45000,
		Color:    "red",
		FuelType: model.FuelPetrol,
		Mileage:  1200,
	}
}

func TestCarService_CreateCar(t *testing.T) {
	carService, seller, company, _ := setupCarServiceTest(t)

	car, err := carService.CreateCar(seller.ID, testCarInput())
	assert.NoError(t, err)
	assert.Equal(t, company.ID, car.CompanyID)
	assert.Equal(t, model.CarStatusAvailable, car.Status)
}

func TestCarService_CreateCar_NoCompany(t *testing.T) {
	carService, _, _, testDB := setupCarServiceTest(t)

	buyer := &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(buyer)

	_, err := carService.CreateCar(buyer.ID, testCarInput())
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestCarService_UpdateCar_CrossCompany(t *testing.T) {
	carService, seller, _, testDB := setupCarServiceTest(t)

	car, err := carService.CreateCar(seller.ID, testCarInput())
	require.NoError(t, err)

	otherSeller := &model.User{
		Username:     "rival",
		Email:        "rival@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCompany,
	}
	testDB.Create(otherSeller)
	testDB.Create(&model.Company{
		UserID:  &otherSeller.ID,
		Name:    "Rival Motors",
		Country: "France",
	})

	// The rival can see the car in the catalog but cannot touch it
	_, err = carService.UpdateCar(otherSeller.ID, car.ID, testCarInput())
	assert.ErrorIs(t, err, ErrNotOwner)

	err = carService.DeleteCar(otherSeller.ID, car.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCarService_UpdateCarStatus_Relist(t *testing.T) {
	carService, seller, _, testDB := setupCarServiceTest(t)

	car, err := carService.CreateCar(seller.ID, testCarInput())
	require.NoError(t, err)

	// Simulate a purchase that reserved the car and then fell through
	testDB.Model(car).Update("status", model.CarStatusReserved)

	relisted, err := carService.UpdateCarStatus(seller.ID, car.ID, model.CarStatusAvailable)
	assert.NoError(t, err)
	assert.Equal(t, model.CarStatusAvailable, relisted.Status)
}

func TestCarService_UpdateCarStatus_Invalid(t *testing.T) {
	carService, seller, _, _ := setupCarServiceTest(t)

	car, err := carService.CreateCar(seller.ID, testCarInput())
	require.NoError(t, err)

	_, err = carService.UpdateCarStatus(seller.ID, car.ID, model.CarStatus("scrapped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCarService_ListPublic_Search(t *testing.T) {
	carService, seller, _, _ := setupCarServiceTest(t)

	_, err := carService.CreateCar(seller.ID, testCarInput())
	require.NoError(t, err)

	input := testCarInput()
	input.Model = "City Hatch"
	input.Color = "blue"
	_, err = carService.CreateCar(seller.ID, input)
	require.NoError(t, err)

	// Case-insensitive match on the model name
	cars, err := carService.ListPublic(repository.CarFilter{Search: "roadster"})
	assert.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Roadster X", cars[0].Model)

	// Match on the company name returns everything they sell
	cars, err = carService.ListPublic(repository.CarFilter{Search: "test motors"})
	assert.NoError(t, err)
	assert.Len(t, cars, 2)
}

func TestCarService_ListPublic_StatusFilter(t *testing.T) {
	carService, seller, _, testDB := setupCarServiceTest(t)

	car, err := carService.CreateCar(seller.ID, testCarInput())
	require.NoError(t, err)
	_, err = carService.CreateCar(seller.ID, testCarInput())
	require.NoError(t, err)

	testDB.Model(car).Update("status", model.CarStatusSold)

	status := model.CarStatusAvailable
	cars, err := carService.ListPublic(repository.CarFilter{Status: &status})
	assert.NoError(t, err)
	assert.Len(t, cars, 1)
}

func TestCarService_DeleteCar_HidesFromCatalog(t *testing.T) {
	carService, seller, _, _ := setupCarServiceTest(t)

	car, err := carService.CreateCar(seller.ID, testCarInput())
	require.NoError(t, err)

	err = carService.DeleteCar(seller.ID, car.ID)
	assert.NoError(t, err)

	cars, err := carService.ListPublic(repository.CarFilter{})
	assert.NoError(t, err)
	assert.Len(t, cars, 0)

	_, err = carService.GetCar(car.ID)
	assert.ErrorIs(t, err, ErrCarNotFound)
}
