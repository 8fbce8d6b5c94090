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
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type loanControllerFixture struct {
	controller *LoanController
	router     *gin.Engine
	db         *gorm.DB
	sellerA    *model.User
	sellerB    *model.User
	buyer      *model.User
	loan       *model.LoanApplication
}

// Two dealerships and a pending application against dealership A's car.
func setupLoanControllerTest(t *testing.T) *loanControllerFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	loanRepo := repository.NewLoanRepository(testDB)
	carRepo := repository.NewCarRepository(testDB)
	companyRepo := repository.NewCompanyRepository(testDB)
	requestRepo := repository.NewCompanyRequestRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(testDB), nil)

	loanService := service.NewLoanService(loanRepo, carRepo, notifications)
	companyService := service.NewCompanyService(testDB, companyRepo, requestRepo, userRepo, notifications)
	loanController := NewLoanController(loanService, companyService)

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
	loan := &model.LoanApplication{
		UserID:           buyer.ID,
		CarID:            car.ID,
		Amount:           30000,
		DurationMonths:   48,
		MonthlyIncome:    5000,
		EmploymentStatus: "employed",
		Status:           model.LoanStatusPending,
		Editable:         true,
	}
	testDB.Create(loan)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return &loanControllerFixture{
		controller: loanController,
		router:     router,
		db:         testDB,
		sellerA:    sellerA,
		sellerB:    sellerB,
		buyer:      buyer,
		loan:       loan,
	}
}

func TestLoanController_Review_OwningCompany(t *testing.T) {
	f := setupLoanControllerTest(t)

	f.router.PATCH("/company/loans/:id/review", func(c *gin.Context) {
		setCompanyInContext(c, f.sellerA.ID)
		f.controller.Review(c)
	})

	body, _ := json.Marshal(LoanReviewRequest{Status: "approved", AdminNotes: "income checks out"})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/company/loans/%d/review", f.loan.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded model.LoanApplication
	require.NoError(t, f.db.First(&reloaded, f.loan.ID).Error)
	assert.Equal(t, model.LoanStatusApproved, reloaded.Status)
	assert.False(t, reloaded.Editable)
}

func TestLoanController_Review_ForeignCompany(t *testing.T) {
	f := setupLoanControllerTest(t)

	f.router.PATCH("/company/loans/:id/review", func(c *gin.Context) {
		setCompanyInContext(c, f.sellerB.ID)
		f.controller.Review(c)
	})

	body, _ := json.Marshal(LoanReviewRequest{Status: "approved"})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/company/loans/%d/review", f.loan.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	// The application is untouched and still editable
	var reloaded model.LoanApplication
	require.NoError(t, f.db.First(&reloaded, f.loan.ID).Error)
	assert.Equal(t, model.LoanStatusPending, reloaded.Status)
	assert.True(t, reloaded.Editable)
}

func TestLoanController_Edit_NoCarID(t *testing.T) {
	f := setupLoanControllerTest(t)

	f.router.PUT("/loans/:id", func(c *gin.Context) {
		setUserIDInContext(c, f.buyer.ID)
		f.controller.Edit(c)
	})

	// car_id is not part of the edit payload
	body, _ := json.Marshal(LoanEditRequest{
		Amount:           28000,
		DurationMonths:   36,
		MonthlyIncome:    5200,
		EmploymentStatus: "employed",
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/loans/%d", f.loan.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded model.LoanApplication
	require.NoError(t, f.db.First(&reloaded, f.loan.ID).Error)
	assert.Equal(t, 28000.0, reloaded.Amount)
	assert.Equal(t, 36, reloaded.DurationMonths)
	assert.Equal(t, f.loan.CarID, reloaded.CarID)
}
