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

type TestDriveController struct {
	testDriveService service.TestDriveService
	companyService   service.CompanyService
}

func NewTestDriveController(testDriveService service.TestDriveService, companyService service.CompanyService) *TestDriveController {
	return &TestDriveController{
		testDriveService: testDriveService,
		companyService:   companyService,
	}
}

type BookTestDriveRequest struct {
	CarID uint   `json:"car_id" binding:"required"`
	Date  string `json:"date" binding:"required,datetime=2006-01-02"`
	Time  string `json:"time" binding:"required,datetime=15:04"`
	Notes string `json:"notes"`
}

type TestDriveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Book schedules a test drive
// POST /api/v1/test-drives
func (ctrl *TestDriveController) Book(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req BookTestDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "car_id, date (YYYY-MM-DD) and time (HH:MM) are required")
		return
	}

	testDrive, err := ctrl.testDriveService.Book(userID, service.BookTestDriveInput{
		CarID: req.CarID,
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			apperrors.NotFound(c, apperrors.CarNotFound, "Car not found")
			return
		}
		log.Error("Failed to book test drive", err, map[string]interface{}{
			"user_id": userID,
			"car_id":  req.CarID,
		})
		apperrors.InternalError(c, "Failed to book test drive")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"test_drive": testDrive})
}

// ListMine returns the user's test drives
// GET /api/v1/test-drives
func (ctrl *TestDriveController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	testDrives, err := ctrl.testDriveService.GetUserTestDrives(userID)
	if err != nil {
		log.Error("Failed to list test drives", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to list test drives")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test_drives": testDrives,
		"count":       len(testDrives),
	})
}

// Cancel withdraws one of the user's bookings
// POST /api/v1/test-drives/:id/cancel
func (ctrl *TestDriveController) Cancel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	testDriveID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	testDrive, err := ctrl.testDriveService.Cancel(userID, testDriveID)
	if err != nil {
		ctrl.respondTestDriveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"test_drive": testDrive})
}

// ListForCompany returns bookings for the acting company's cars
// GET /api/v1/company/test-drives
func (ctrl *TestDriveController) ListForCompany(c *gin.Context) {
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

	testDrives, err := ctrl.testDriveService.GetCompanyTestDrives(company.ID)
	if err != nil {
		log.Error("Failed to list company test drives", err, map[string]interface{}{
			"company_id": company.ID,
		})
		apperrors.InternalError(c, "Failed to list test drives")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test_drives": testDrives,
		"count":       len(testDrives),
	})
}

// ListAll returns every booking on the platform
// GET /api/v1/admin/test-drives
func (ctrl *TestDriveController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	testDrives, err := ctrl.testDriveService.GetAllTestDrives()
	if err != nil {
		log.Error("Failed to list all test drives", err, nil)
		apperrors.InternalError(c, "Failed to list test drives")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test_drives": testDrives,
		"count":       len(testDrives),
	})
}

// UpdateStatus confirms, completes or cancels a booking (company or admin)
// PATCH /api/v1/company/test-drives/:id/status
// PATCH /api/v1/admin/test-drives/:id/status
func (ctrl *TestDriveController) UpdateStatus(c *gin.Context) {
	testDriveID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TestDriveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	status := model.TestDriveStatus(req.Status)
	if !model.ValidTestDriveStatus(status) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidStatus, "Invalid status value")
		return
	}

	// Companies may only update bookings on their own cars.
	if role, _ := middleware.GetUserRole(c); role == model.RoleCompany {
		userID, _ := middleware.GetUserID(c)
		owned, err := ctrl.ownsBooking(userID, testDriveID)
		if err != nil {
			if errors.Is(err, service.ErrCompanyNotFound) {
				apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
				return
			}
			apperrors.InternalError(c, "Failed to update test drive")
			return
		}
		if !owned {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzNotOwner, "Test drive belongs to another company")
			return
		}
	}

	testDrive, err := ctrl.testDriveService.UpdateStatus(testDriveID, status)
	if err != nil {
		ctrl.respondTestDriveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"test_drive": testDrive})
}

func (ctrl *TestDriveController) ownsBooking(userID, testDriveID uint) (bool, error) {
	company, err := ctrl.companyService.GetMyCompany(userID)
	if err != nil {
		return false, err
	}

	bookings, err := ctrl.testDriveService.GetCompanyTestDrives(company.ID)
	if err != nil {
		return false, err
	}
	for i := range bookings {
		if bookings[i].ID == testDriveID {
			return true, nil
		}
	}
	return false, nil
}

func (ctrl *TestDriveController) respondTestDriveError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrTestDriveNotFound):
		apperrors.NotFound(c, apperrors.TestDriveNotFound, "Test drive not found")
	case errors.Is(err, service.ErrInvalidTransition):
		apperrors.BadRequest(c, apperrors.ValidationInvalidTransition, "Status transition not allowed")
	default:
		log.Error("Test drive operation failed", err, nil)
		apperrors.InternalError(c, "Test drive operation failed")
	}
}
