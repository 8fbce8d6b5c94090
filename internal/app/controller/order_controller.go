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

type OrderController struct {
	orderService   service.OrderService
	companyService service.CompanyService
}

func NewOrderController(orderService service.OrderService, companyService service.CompanyService) *OrderController {
	return &OrderController{
		orderService:   orderService,
		companyService: companyService,
	}
}

type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Checkout converts the cart into an order
// POST /api/v1/orders/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "payment_method and shipping_address are required")
		return
	}

	paymentMethod := model.PaymentMethod(req.PaymentMethod)
	if !model.ValidPaymentMethod(paymentMethod) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment_method value")
		return
	}

	order, err := ctrl.orderService.Checkout(userID, service.CheckoutInput{
		PaymentMethod:   paymentMethod,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
			return
		}
		log.Error("Checkout failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Checkout failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListMine returns the user's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// Get returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(userID, orderID)
	if err != nil {
		ctrl.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Pay settles a pending order
// POST /api/v1/orders/:id/pay
func (ctrl *OrderController) Pay(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Pay(userID, orderID)
	if err != nil {
		ctrl.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Cancel cancels one of the user's orders
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) Cancel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Cancel(userID, orderID)
	if err != nil {
		ctrl.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListAll returns every order on the platform
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetAllOrders()
	if err != nil {
		log.Error("Failed to list all orders", err, nil)
		apperrors.InternalError(c, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateStatus moves an order through fulfilment
// PATCH /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	status := model.OrderStatus(req.Status)
	if !model.ValidOrderStatus(status) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidStatus, "Invalid status value")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(orderID, status)
	if err != nil {
		ctrl.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// SoldItems lists the acting company's sold part line items
// GET /api/v1/company/orders
func (ctrl *OrderController) SoldItems(c *gin.Context) {
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

	items, err := ctrl.orderService.GetCompanySoldItems(company.ID)
	if err != nil {
		log.Error("Failed to list sold items", err, map[string]interface{}{
			"company_id": company.ID,
		})
		apperrors.InternalError(c, "Failed to list sold items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (ctrl *OrderController) respondOrderError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrInvalidTransition):
		apperrors.BadRequest(c, apperrors.ValidationInvalidTransition, "Status transition not allowed")
	default:
		log.Error("Order operation failed", err, nil)
		apperrors.InternalError(c, "Order operation failed")
	}
}
