package controller

import (
	"errors"
	"net/http"

	"github.com/carhive/carhive-backend/internal/app/service"
	apperrors "github.com/carhive/carhive-backend/internal/errors"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CompanyController struct {
	companyService   service.CompanyService
	dashboardService service.DashboardService
}

func NewCompanyController(companyService service.CompanyService, dashboardService service.DashboardService) *CompanyController {
	return &CompanyController{
		companyService:   companyService,
		dashboardService: dashboardService,
	}
}

type CompanyUpdateRequest struct {
	Name            string `json:"name" binding:"required"`
	Country         string `json:"country" binding:"required"`
	Description     string `json:"description"`
	LogoURL         string `json:"logo_url"`
	EstablishedYear *int   `json:"established_year"`
}

type CompanyRequestSubmission struct {
	CompanyName       string `json:"company_name" binding:"required"`
	Country           string `json:"country" binding:"required"`
	Description       string `json:"description"`
	EstablishedYear   *int   `json:"established_year"`
	ContactEmail      string `json:"contact_email" binding:"required,email"`
	ContactPhone      string `json:"contact_phone"`
	RequestedUsername string `json:"requested_username" binding:"required,min=3,max=50"`
	RequestedPassword string `json:"requested_password" binding:"required,min=8"`
}

type RequestReviewBody struct {
	AdminNotes string `json:"admin_notes"`
}

// ListCompanies returns all dealerships
// GET /api/v1/companies
func (ctrl *CompanyController) ListCompanies(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	companies, err := ctrl.companyService.ListCompanies()
	if err != nil {
		log.Error("Failed to list companies", err, nil)
		apperrors.InternalError(c, "Failed to list companies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"count":     len(companies),
	})
}

// GetCompany returns one dealership profile
// GET /api/v1/companies/:id
func (ctrl *CompanyController) GetCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	company, err := ctrl.companyService.GetCompany(companyID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch company")
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// SubmitRequest files a public onboarding application
// POST /api/v1/companies/requests
func (ctrl *CompanyController) SubmitRequest(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CompanyRequestSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid company request data")
		return
	}

	request, err := ctrl.companyService.SubmitRequest(service.CompanyRequestInput{
		CompanyName:       req.CompanyName,
		Country:           req.Country,
		Description:       req.Description,
		EstablishedYear:   req.EstablishedYear,
		ContactEmail:      req.ContactEmail,
		ContactPhone:      req.ContactPhone,
		RequestedUsername: req.RequestedUsername,
		RequestedPassword: req.RequestedPassword,
	})
	if err != nil {
		log.Error("Failed to submit company request", err, map[string]interface{}{
			"company_name": req.CompanyName,
		})
		info := apperrors.ParseError(err, "company request")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// GetMine returns the acting company's profile
// GET /api/v1/company/profile
func (ctrl *CompanyController) GetMine(c *gin.Context) {
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
		apperrors.InternalError(c, "Failed to fetch company profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// UpdateMine edits the acting company's profile
// PUT /api/v1/company/profile
func (ctrl *CompanyController) UpdateMine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CompanyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid company data")
		return
	}

	company, err := ctrl.companyService.UpdateMyCompany(userID, service.CompanyInput{
		Name:            req.Name,
		Country:         req.Country,
		Description:     req.Description,
		LogoURL:         req.LogoURL,
		EstablishedYear: req.EstablishedYear,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
			return
		}
		apperrors.InternalError(c, "Failed to update company profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// Dashboard returns the acting company's stats
// GET /api/v1/company/dashboard
func (ctrl *CompanyController) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := ctrl.dashboardService.CompanyStats(userID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
			return
		}
		log.Error("Failed to build company dashboard", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
