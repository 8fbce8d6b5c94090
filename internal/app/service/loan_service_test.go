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

func setupLoanServiceTest(t *testing.T) (LoanService, *model.User, *model.Car, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	loanRepo := repository.NewLoanRepository(testDB)
	carRepo := repository.NewCarRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)
	notifications := NewNotificationService(notificationRepo, nil)
	loanService := NewLoanService(loanRepo, carRepo, notifications)

	user := &model.User{
		Username:     "applicant",
		Email:        "applicant@example.com",
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
		Model:     "Family SUV",
		Year:      2024,
		Price:     60000,
		Color:     "black",
		FuelType:  model.FuelHybrid,
		Status:    model.CarStatusAvailable,
	}
	testDB.Create(car)

	return loanService, user, car, testDB
}

func testLoanInput(carID uint) LoanInput {
	return LoanInput{
		CarID:            carID,
		Amount:           40000,
		DurationMonths:   48,
		MonthlyIncome:    5000,
		EmploymentStatus: "employed",
	}
}

func TestLoanService_Apply_Success(t *testing.T) {
	loanService, user, car, _ := setupLoanServiceTest(t)

	loan, err := loanService.Apply(user.ID, testLoanInput(car.ID))
	assert.NoError(t, err)
	assert.Equal(t, model.LoanStatusPending, loan.Status)
	assert.True(t, loan.Editable)
}

func TestLoanService_Apply_CarNotFound(t *testing.T) {
	loanService, user, _, _ := setupLoanServiceTest(t)

	_, err := loanService.Apply(user.ID, testLoanInput(9999))
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestLoanService_Edit_WhilePending(t *testing.T) {
	loanService, user, car, _ := setupLoanServiceTest(t)

	loan, err := loanService.Apply(user.ID, testLoanInput(car.ID))
	require.NoError(t, err)

	input := testLoanInput(car.ID)
	input.Amount = 35000
	input.DurationMonths = 36

	updated, err := loanService.Edit(user.ID, loan.ID, input)
	assert.NoError(t, err)
	assert.Equal(t, 35000.0, updated.Amount)
	assert.Equal(t, 36, updated.DurationMonths)
	assert.True(t, updated.Editable)
}

func TestLoanService_Edit_WrongUser(t *testing.T) {
	loanService, user, car, _ := setupLoanServiceTest(t)

	loan, err := loanService.Apply(user.ID, testLoanInput(car.ID))
	require.NoError(t, err)

	_, err = loanService.Edit(user.ID+1, loan.ID, testLoanInput(car.ID))
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestLoanService_Edit_LockedAfterReview(t *testing.T) {
	loanService, user, car, _ := setupLoanServiceTest(t)

	loan, err := loanService.Apply(user.ID, testLoanInput(car.ID))
	require.NoError(t, err)

	_, err = loanService.Review(loan.ID, model.LoanStatusApproved, "income verified")
	require.NoError(t, err)

	// The review locked the application; the decision was made on the
	// submitted figures
	_, err = loanService.Edit(user.ID, loan.ID, testLoanInput(car.ID))
	assert.ErrorIs(t, err, ErrLoanLocked)
}

func TestLoanService_Review_Approve(t *testing.T) {
	loanService, user, car, _ := setupLoanServiceTest(t)

	loan, err := loanService.Apply(user.ID, testLoanInput(car.ID))
	require.NoError(t, err)

	reviewed, err := loanService.Review(loan.ID, model.LoanStatusApproved, "income verified")
	assert.NoError(t, err)
	assert.Equal(t, model.LoanStatusApproved, reviewed.Status)
	assert.Equal(t, "income verified", reviewed.AdminNotes)
	assert.False(t, reviewed.Editable)
}

func TestLoanService_Review_Twice(t *testing.T) {
	loanService, user, car, _ := setupLoanServiceTest(t)

	loan, err := loanService.Apply(user.ID, testLoanInput(car.ID))
	require.NoError(t, err)

	_, err = loanService.Review(loan.ID, model.LoanStatusRejected, "insufficient income")
	require.NoError(t, err)

	// Rejected is terminal; a second review cannot flip the decision
	_, err = loanService.Review(loan.ID, model.LoanStatusApproved, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLoanService_Review_NotFound(t *testing.T) {
	loanService, _, _, _ := setupLoanServiceTest(t)

	_, err := loanService.Review(9999, model.LoanStatusApproved, "")
	assert.ErrorIs(t, err, ErrLoanNotFound)
}
