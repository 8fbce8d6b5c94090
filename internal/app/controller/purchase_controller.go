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

type PurchaseController struct {
	purchaseService service.PurchaseService
	companyService  service.CompanyService
}

func NewPurchaseController(purchaseService service.PurchaseService, companyService service.CompanyService) *PurchaseController {
	return &PurchaseController{
		purchaseService: purchaseService,
		companyService:  companyService,
	}
}

type BuyCarRequest struct {
	CarID         uint   `json:"car_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type PurchaseStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Buy opens a pending purchase and reserves the car
// POST /api/v1/purchases
func (ctrl *PurchaseController) Buy(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req BuyCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "car_id and payment_method are required")
		return
	}

	paymentMethod := model.PaymentMethod(req.PaymentMethod)
	if !model.ValidPaymentMethod(paymentMethod) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment_method value")
		return
	}

	purchase, err := ctrl.purchaseService.BuyCar(userID, req.CarID, paymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCarNotFound):
			apperrors.NotFound(c, apperrors.CarNotFound, "Car not found")
		case errors.Is(err, service.ErrCarNotAvailable):
			apperrors.Conflict(c, apperrors.CarNotAvailable, "Car is not available for purchase")
		default:
			log.Error("Car purchase failed", err, map[string]interface{}{
				"user_id": userID,
				"car_id":  req.CarID,
			})
			apperrors.InternalError(c, "Car purchase failed")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"purchase": purchase})
}

// ListMine returns the user's purchase history
// GET /api/v1/purchases
func (ctrl *PurchaseController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	purchases, err := ctrl.purchaseService.GetUserPurchases(userID)
	if err != nil {
		log.Error("Failed to list purchases", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"purchases": purchases,
		"count":     len(purchases),
	})
}

// Get returns one of the user's purchases
// GET /api/v1/purchases/:id
func (ctrl *PurchaseController) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	purchaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := ctrl.purchaseService.GetPurchase(userID, purchaseID)
	if err != nil {
		if errors.Is(err, service.ErrPurchaseNotFound) {
			apperrors.NotFound(c, apperrors.PurchaseNotFound, "Purchase not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch purchase")
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

// ListForCompany returns purchases of the acting company's cars
// GET /api/v1/company/purchases
func (ctrl *PurchaseController) ListForCompany(c *gin.Context) {
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

	purchases, err := ctrl.purchaseService.GetCompanyPurchases(company.ID)
	if err != nil {
		log.Error("Failed to list company purchases", err, map[string]interface{}{
			"company_id": company.ID,
		})
		apperrors.InternalError(c, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"purchases": purchases,
		"count":     len(purchases),
	})
}

// ListAll returns every purchase on the platform
// GET /api/v1/admin/purchases
func (ctrl *PurchaseController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	purchases, err := ctrl.purchaseService.GetAllPurchases()
	if err != nil {
		log.Error("Failed to list all purchases", err, nil)
		apperrors.InternalError(c, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"purchases": purchases,
		"count":     len(purchases),
	})
}

// Resolve moves a purchase along its lifecycle (company or admin)
// PATCH /api/v1/company/purchases/:id/status
// PATCH /api/v1/admin/purchases/:id/status
func (ctrl *PurchaseController) Resolve(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	purchaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PurchaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	status := model.PurchaseStatus(req.Status)
	if !model.ValidPurchaseStatus(status) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidStatus, "Invalid status value")
		return
	}

	// Companies may only resolve purchases of their own cars.
	if role, _ := middleware.GetUserRole(c); role == model.RoleCompany {
		userID, _ := middleware.GetUserID(c)
		owned, err := ctrl.ownsPurchase(userID, purchaseID)
		if err != nil {
			if errors.Is(err, service.ErrPurchaseNotFound) {
				apperrors.NotFound(c, apperrors.PurchaseNotFound, "Purchase not found")
				return
			}
			apperrors.InternalError(c, "Failed to resolve purchase")
			return
		}
		if !owned {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzNotOwner, "Purchase belongs to another company")
			return
		}
	}

	purchase, err := ctrl.purchaseService.Resolve(purchaseID, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseNotFound):
			apperrors.NotFound(c, apperrors.PurchaseNotFound, "Purchase not found")
		case errors.Is(err, service.ErrInvalidTransition):
			apperrors.BadRequest(c, apperrors.ValidationInvalidTransition, "Status transition not allowed")
		default:
			log.Error("Purchase resolution failed", err, map[string]interface{}{
				"purchase_id": purchaseID,
			})
			apperrors.InternalError(c, "Purchase resolution failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

func (ctrl *PurchaseController) ownsPurchase(userID, purchaseID uint) (bool, error) {
	company, err := ctrl.companyService.GetMyCompany(userID)
	if err != nil {
		return false, err
	}

	purchases, err := ctrl.purchaseService.GetCompanyPurchases(company.ID)
	if err != nil {
		return false, err
	}
	for i := range purchases {
		if purchases[i].ID == purchaseID {
			return true, nil
		}
	}
	return false, nil
}
