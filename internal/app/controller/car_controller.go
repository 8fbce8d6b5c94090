package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/app/service"
	apperrors "github.com/carhive/carhive-backend/internal/errors"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CarController struct {
	carService service.CarService
}

func NewCarController(carService service.CarService) *CarController {
	return &CarController{carService: carService}
}

type CarRequest struct {
	Model       string  `json:"model" binding:"required"`
	Year        int     `json:"year" binding:"required,gte=1900"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Color       string  `json:"color" binding:"required"`
	FuelType    string  `json:"fuel_type" binding:"required"`
	Mileage     int     `json:"mileage" binding:"gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

type CarStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List serves the public car catalog
// GET /api/v1/cars?search=&company_id=&status=
func (ctrl *CarController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.CarFilter{Search: c.Query("search")}
	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid company_id parameter")
			return
		}
		companyID := uint(id)
		filter.CompanyID = &companyID
	}
	if raw := c.Query("status"); raw != "" {
		status := model.CarStatus(raw)
		if !model.ValidCarStatus(status) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidStatus, "Invalid status parameter")
			return
		}
		filter.Status = &status
	}

	cars, err := ctrl.carService.ListPublic(filter)
	if err != nil {
		log.Error("Failed to list cars", err, nil)
		apperrors.InternalError(c, "Failed to list cars")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":  cars,
		"count": len(cars),
	})
}

// Get returns one car with its company
// GET /api/v1/cars/:id
func (ctrl *CarController) Get(c *gin.Context) {
	carID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	car, err := ctrl.carService.GetCar(carID)
	if err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			apperrors.NotFound(c, apperrors.CarNotFound, "Car not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch car")
		return
	}

	c.JSON(http.StatusOK, gin.H{"car": car})
}

// ListMine returns the acting company's own listings, any status
// GET /api/v1/company/cars
func (ctrl *CarController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	cars, err := ctrl.carService.ListCompanyCars(userID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
			return
		}
		log.Error("Failed to list company cars", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to list cars")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":  cars,
		"count": len(cars),
	})
}

// Create lists a new car for the acting company
// POST /api/v1/company/cars
func (ctrl *CarController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	input, ok := ctrl.bindCarInput(c)
	if !ok {
		return
	}

	car, err := ctrl.carService.CreateCar(userID, input)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
			return
		}
		log.Error("Failed to create car", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to create car")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"car": car})
}

// Update edits one of the acting company's listings
// PUT /api/v1/company/cars/:id
func (ctrl *CarController) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	carID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input, ok := ctrl.bindCarInput(c)
	if !ok {
		return
	}

	car, err := ctrl.carService.UpdateCar(userID, carID, input)
	if err != nil {
		ctrl.respondCarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"car": car})
}

// UpdateStatus sets a listing's availability directly
// PATCH /api/v1/company/cars/:id/status
func (ctrl *CarController) UpdateStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	carID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CarStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	car, err := ctrl.carService.UpdateCarStatus(userID, carID, model.CarStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidStatus, "Invalid status value")
			return
		}
		ctrl.respondCarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"car": car})
}

// Delete removes one of the acting company's listings
// DELETE /api/v1/company/cars/:id
func (ctrl *CarController) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	carID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.carService.DeleteCar(userID, carID); err != nil {
		ctrl.respondCarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted"})
}

func (ctrl *CarController) bindCarInput(c *gin.Context) (service.CarInput, bool) {
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid car data")
		return service.CarInput{}, false
	}

	fuelType := model.FuelType(req.FuelType)
	if !model.ValidFuelType(fuelType) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid fuel_type value")
		return service.CarInput{}, false
	}

	return service.CarInput{
		Model:       req.Model,
		Year:        req.Year,
		Price:       req.Price,
		Color:       req.Color,
		FuelType:    fuelType,
		Mileage:     req.Mileage,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}, true
}

func (ctrl *CarController) respondCarError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCarNotFound):
		apperrors.NotFound(c, apperrors.CarNotFound, "Car not found")
	case errors.Is(err, service.ErrCompanyNotFound):
		apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
	case errors.Is(err, service.ErrNotOwner):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzNotOwner, "Car belongs to another company")
	default:
		log.Error("Car operation failed", err, nil)
		apperrors.InternalError(c, "Car operation failed")
	}
}
