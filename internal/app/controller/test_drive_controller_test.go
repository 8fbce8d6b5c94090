package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/app/service"
	"github.com/carhive/carhive-backend/internal/db"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testDriveControllerFixture struct {
	controller *TestDriveController
	router     *gin.Engine
	db         *gorm.DB
	sellerA    *model.User
	sellerB    *model.User
	booking    *model.TestDrive
}

// Two dealerships, a buyer, and a pending booking on dealership A's car.
func setupTestDriveControllerTest(t *testing.T) *testDriveControllerFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	testDriveRepo := repository.NewTestDriveRepository(testDB)
	carRepo := repository.NewCarRepository(testDB)
	companyRepo := repository.NewCompanyRepository(testDB)
	requestRepo := repository.NewCompanyRequestRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(testDB), nil)

	testDriveService := service.NewTestDriveService(testDriveRepo, carRepo, notifications)
	companyService := service.NewCompanyService(testDB, companyRepo, requestRepo, userRepo, notifications)
	testDriveController := NewTestDriveController(testDriveService, companyService)

	sellerA := &model.User{Username: "sellera", Email: "a@example.com", PasswordHash: "hash", Role: model.RoleCompany}
	testDB.Create(sellerA)
	companyA := &model.Company{UserID: &sellerA.ID, Name: "Alpha Motors", Country: "Germany"}
	testDB.Create(companyA)

	sellerB := &model.User{Username: "sellerb", Email: "b@example.com", PasswordHash: "hash", Role: model.RoleCompany}
	testDB.Create(sellerB)
	companyB := &model.Company{UserID: &sellerB.ID, Name: "Beta Autos", Country: "France"}
	testDB.Create(companyB)

	car := &model.Car{
		CompanyID: companyA.ID,
		Model:     "Roadster X",
		Year:      2023,
		Price:     45000,
		Color:     "red",
		FuelType:  model.FuelPetrol,
		Status:    model.CarStatusAvailable,
	}
	testDB.Create(car)

	buyer := &model.User{Username: "buyer", Email: "buyer@example.com", PasswordHash: "hash", Role: model.RoleUser}
	testDB.Create(buyer)
	booking := &model.TestDrive{
		UserID: buyer.ID,
		CarID:  car.ID,
		Date:   "2026-09-15",
		Time:   "14:30",
		Status: model.TestDriveStatusPending,
	}
	testDB.Create(booking)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return &testDriveControllerFixture{
		controller: testDriveController,
		router:     router,
		db:         testDB,
		sellerA:    sellerA,
		sellerB:    sellerB,
		booking:    booking,
	}
}

// Helper to inject a company principal, standing in for the auth middleware
func setCompanyInContext(c *gin.Context, userID uint) {
	c.Set(middleware.UserIDKey, userID)
	c.Set(middleware.UserRoleKey, model.RoleCompany)
}

func patchStatus(router *gin.Engine, path, status string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"status": status})
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTestDriveController_UpdateStatus_OwningCompany(t *testing.T) {
	f := setupTestDriveControllerTest(t)

	f.router.PATCH("/company/test-drives/:id/status", func(c *gin.Context) {
		setCompanyInContext(c, f.sellerA.ID)
		f.controller.UpdateStatus(c)
	})

	w := patchStatus(f.router, fmt.Sprintf("/company/test-drives/%d/status", f.booking.ID), "confirmed")

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded model.TestDrive
	require.NoError(t, f.db.First(&reloaded, f.booking.ID).Error)
	assert.Equal(t, model.TestDriveStatusConfirmed, reloaded.Status)
}

func TestTestDriveController_UpdateStatus_ForeignCompany(t *testing.T) {
	f := setupTestDriveControllerTest(t)

	f.router.PATCH("/company/test-drives/:id/status", func(c *gin.Context) {
		setCompanyInContext(c, f.sellerB.ID)
		f.controller.UpdateStatus(c)
	})

	w := patchStatus(f.router, fmt.Sprintf("/company/test-drives/%d/status", f.booking.ID), "confirmed")

	assert.Equal(t, http.StatusForbidden, w.Code)

	// The booking is untouched
	var reloaded model.TestDrive
	require.NoError(t, f.db.First(&reloaded, f.booking.ID).Error)
	assert.Equal(t, model.TestDriveStatusPending, reloaded.Status)
}

func TestTestDriveController_UpdateStatus_AdminBypassesOwnership(t *testing.T) {
	f := setupTestDriveControllerTest(t)

	admin := &model.User{Username: "root", Email: "root@example.com", PasswordHash: "hash", Role: model.RoleAdmin}
	f.db.Create(admin)

	f.router.PATCH("/admin/test-drives/:id/status", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, admin.ID)
		c.Set(middleware.UserRoleKey, model.RoleAdmin)
		f.controller.UpdateStatus(c)
	})

	w := patchStatus(f.router, fmt.Sprintf("/admin/test-drives/%d/status", f.booking.ID), "confirmed")

	assert.Equal(t, http.StatusOK, w.Code)
}
