package controller

import (
	"errors"
	"net/http"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/service"
	apperrors "github.com/carhive/carhive-backend/internal/errors"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type LoanController struct {
	loanService    service.LoanService
	companyService service.CompanyService
}

func NewLoanController(loanService service.LoanService, companyService service.CompanyService) *LoanController {
	return &LoanController{
		loanService:    loanService,
		companyService: companyService,
	}
}

type LoanRequest struct {
	CarID            uint    `json:"car_id" binding:"required"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	DurationMonths   int     `json:"duration_months" binding:"required,gt=0"`
	MonthlyIncome    float64 `json:"monthly_income" binding:"required,gt=0"`
	EmploymentStatus string  `json:"employment_status" binding:"required"`
}

// LoanEditRequest omits car_id: the car an application targets never changes.
type LoanEditRequest struct {
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	DurationMonths   int     `json:"duration_months" binding:"required,gt=0"`
	MonthlyIncome    float64 `json:"monthly_income" binding:"required,gt=0"`
	EmploymentStatus string  `json:"employment_status" binding:"required"`
}

type LoanReviewRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

// Apply files a loan application for a car
// POST /api/v1/loans
func (ctrl *LoanController) Apply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid loan application data")
		return
	}

	loan, err := ctrl.loanService.Apply(userID, service.LoanInput{
		CarID:            req.CarID,
		Amount:           req.Amount,
		DurationMonths:   req.DurationMonths,
		MonthlyIncome:    req.MonthlyIncome,
		EmploymentStatus: req.EmploymentStatus,
	})
	if err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			apperrors.NotFound(c, apperrors.CarNotFound, "Car not found")
			return
		}
		log.Error("Loan application failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Loan application failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// ListMine returns the user's loan applications
// GET /api/v1/loans
func (ctrl *LoanController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	loans, err := ctrl.loanService.GetUserLoans(userID)
	if err != nil {
		log.Error("Failed to list loans", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loans": loans,
		"count": len(loans),
	})
}

// Get returns one of the user's applications
// GET /api/v1/loans/:id
func (ctrl *LoanController) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loan, err := ctrl.loanService.GetLoan(userID, loanID)
	if err != nil {
		ctrl.respondLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// Edit updates an application that has not been reviewed yet. A locked
// application responds 403: the figures are frozen once a decision is made.
// PUT /api/v1/loans/:id
func (ctrl *LoanController) Edit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LoanEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid loan application data")
		return
	}

	loan, err := ctrl.loanService.Edit(userID, loanID, service.LoanInput{
		Amount:           req.Amount,
		DurationMonths:   req.DurationMonths,
		MonthlyIncome:    req.MonthlyIncome,
		EmploymentStatus: req.EmploymentStatus,
	})
	if err != nil {
		ctrl.respondLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// ListForCompany returns applications against the acting company's cars
// GET /api/v1/company/loans
func (ctrl *LoanController) ListForCompany(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	company, err := ctrl.companyService.GetMyCompany(userID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
			return
		}
		apperrors.InternalError(c, "Failed to resolve company")
		return
	}

	loans, err := ctrl.loanService.GetCompanyLoans(company.ID)
	if err != nil {
		log.Error("Failed to list company loans", err, map[string]interface{}{
			"company_id": company.ID,
		})
		apperrors.InternalError(c, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loans": loans,
		"count": len(loans),
	})
}

// ListAll returns every application on the platform
// GET /api/v1/admin/loans
func (ctrl *LoanController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	loans, err := ctrl.loanService.GetAllLoans()
	if err != nil {
		log.Error("Failed to list all loans", err, nil)
		apperrors.InternalError(c, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loans": loans,
		"count": len(loans),
	})
}

// Review approves or rejects a pending application and locks it (company or admin)
// PATCH /api/v1/company/loans/:id/review
// PATCH /api/v1/admin/loans/:id/review
func (ctrl *LoanController) Review(c *gin.Context) {
	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LoanReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	status := model.LoanStatus(req.Status)
	if status != model.LoanStatusApproved && status != model.LoanStatusRejected {
		apperrors.BadRequest(c, apperrors.ValidationInvalidStatus, "status must be approved or rejected")
		return
	}

	// Companies may only review applications against their own cars.
	if role, _ := middleware.GetUserRole(c); role == model.RoleCompany {
		userID, _ := middleware.GetUserID(c)
		owned, err := ctrl.ownsLoan(userID, loanID)
		if err != nil {
			if errors.Is(err, service.ErrCompanyNotFound) {
				apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
				return
			}
			apperrors.InternalError(c, "Failed to review loan")
			return
		}
		if !owned {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzNotOwner, "Loan application belongs to another company")
			return
		}
	}

	loan, err := ctrl.loanService.Review(loanID, status, req.AdminNotes)
	if err != nil {
		ctrl.respondLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

func (ctrl *LoanController) ownsLoan(userID, loanID uint) (bool, error) {
	company, err := ctrl.companyService.GetMyCompany(userID)
	if err != nil {
		return false, err
	}

	loans, err := ctrl.loanService.GetCompanyLoans(company.ID)
	if err != nil {
		return false, err
	}
	for i := range loans {
		if loans[i].ID == loanID {
			return true, nil
		}
	}
	return false, nil
}

func (ctrl *LoanController) respondLoanError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrLoanNotFound):
		apperrors.NotFound(c, apperrors.LoanNotFound, "Loan application not found")
	case errors.Is(err, service.ErrLoanLocked):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.LoanLocked, "Loan application is locked after review")
	case errors.Is(err, service.ErrInvalidTransition):
		apperrors.BadRequest(c, apperrors.ValidationInvalidTransition, "Status transition not allowed")
	default:
		log.Error("Loan operation failed", err, nil)
		apperrors.InternalError(c, "Loan operation failed")
	}
}
