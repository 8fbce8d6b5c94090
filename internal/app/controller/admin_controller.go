package controller

import (
	"errors"
	"net/http"

	"github.com/carhive/carhive-backend/internal/app/service"
	apperrors "github.com/carhive/carhive-backend/internal/errors"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AdminController covers the platform-operator surface: onboarding reviews,
// company management, the user directory and the admin dashboard.
type AdminController struct {
	companyService   service.CompanyService
	dashboardService service.DashboardService
	userService      service.UserService
}

func NewAdminController(companyService service.CompanyService, dashboardService service.DashboardService, userService service.UserService) *AdminController {
	return &AdminController{
		companyService:   companyService,
		dashboardService: dashboardService,
		userService:      userService,
	}
}

// ListRequests returns all onboarding applications, newest first
// GET /api/v1/admin/company-requests
func (ctrl *AdminController) ListRequests(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	requests, err := ctrl.companyService.ListRequests()
	if err != nil {
		log.Error("Failed to list company requests", err, nil)
		apperrors.InternalError(c, "Failed to list company requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// ApproveRequest provisions the company account from a pending application
// POST /api/v1/admin/company-requests/:id/approve
func (ctrl *AdminController) ApproveRequest(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var body RequestReviewBody
	c.ShouldBindJSON(&body) // notes are optional

	request, err := ctrl.companyService.ApproveRequest(requestID, body.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			apperrors.NotFound(c, apperrors.CompanyRequestNotFound, "Company request not found")
		case errors.Is(err, service.ErrRequestReviewed):
			apperrors.Conflict(c, apperrors.CompanyRequestReviewed, "Company request has already been reviewed")
		case errors.Is(err, service.ErrUsernameExists):
			// The request stays pending; the applicant can be asked for
			// another username and the approval retried.
			apperrors.Conflict(c, apperrors.CompanyUsernameConflict, "Requested username is already taken")
		default:
			log.Error("Failed to approve company request", err, map[string]interface{}{
				"request_id": requestID,
			})
			apperrors.InternalError(c, "Failed to approve company request")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// RejectRequest declines a pending application
// POST /api/v1/admin/company-requests/:id/reject
func (ctrl *AdminController) RejectRequest(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var body RequestReviewBody
	c.ShouldBindJSON(&body)

	request, err := ctrl.companyService.RejectRequest(requestID, body.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			apperrors.NotFound(c, apperrors.CompanyRequestNotFound, "Company request not found")
		case errors.Is(err, service.ErrRequestReviewed):
			apperrors.Conflict(c, apperrors.CompanyRequestReviewed, "Company request has already been reviewed")
		default:
			log.Error("Failed to reject company request", err, map[string]interface{}{
				"request_id": requestID,
			})
			apperrors.InternalError(c, "Failed to reject company request")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

type CompanyCreateRequest struct {
	Name            string `json:"name" binding:"required"`
	Country         string `json:"country" binding:"required"`
	Description     string `json:"description"`
	LogoURL         string `json:"logo_url"`
	EstablishedYear *int   `json:"established_year"`
	Username        string `json:"username" binding:"omitempty,min=3,max=50"`
	Password        string `json:"password" binding:"required_with=Username,omitempty,min=8"`
}

// CreateCompany registers a company directly, optionally with a login
// POST /api/v1/admin/companies
func (ctrl *AdminController) CreateCompany(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CompanyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid company data")
		return
	}

	company, err := ctrl.companyService.AdminCreateCompany(service.CompanyInput{
		Name:            req.Name,
		Country:         req.Country,
		Description:     req.Description,
		LogoURL:         req.LogoURL,
		EstablishedYear: req.EstablishedYear,
	}, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			apperrors.Conflict(c, apperrors.CompanyUsernameConflict, "Username is already taken")
			return
		}
		log.Error("Failed to create company", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create company")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// UpdateCompany edits any company profile
// PUT /api/v1/admin/companies/:id
func (ctrl *AdminController) UpdateCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CompanyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid company data")
		return
	}

	company, err := ctrl.companyService.AdminUpdateCompany(companyID, service.CompanyInput{
		Name:            req.Name,
		Country:         req.Country,
		Description:     req.Description,
		LogoURL:         req.LogoURL,
		EstablishedYear: req.EstablishedYear,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company not found")
			return
		}
		apperrors.InternalError(c, "Failed to update company")
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// DeleteCompany retires a company and all of its inventory
// DELETE /api/v1/admin/companies/:id
func (ctrl *AdminController) DeleteCompany(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.companyService.AdminDeleteCompany(companyID); err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company not found")
			return
		}
		log.Error("Failed to delete company", err, map[string]interface{}{
			"company_id": companyID,
		})
		apperrors.InternalError(c, "Failed to delete company")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

// ListUsers returns the buyer directory
// GET /api/v1/admin/users?search=
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.userService.ListUsers(c.Query("search"))
	if err != nil {
		log.Error("Failed to list users", err, nil)
		apperrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// GetUser returns a buyer with their orders, purchases, test drives and loans
// GET /api/v1/admin/users/:id
func (ctrl *AdminController) GetUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activity, err := ctrl.userService.GetUserActivity(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to load user activity", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load user activity")
		return
	}

	c.JSON(http.StatusOK, activity)
}

// Dashboard returns the platform-wide stats
// GET /api/v1/admin/dashboard
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.dashboardService.AdminStats()
	if err != nil {
		log.Error("Failed to build admin dashboard", err, nil)
		apperrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
