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

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddToCartRequest struct {
	PartID uint `json:"part_id" binding:"required"`
}

// GetCart returns the user's cart with line subtotals and the running total
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items,
		"count": len(cart.Items),
		"total": cart.Total,
	})
}

// AddToCart adds one unit of a part to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "part_id is required")
		return
	}

	item, err := ctrl.cartService.AddToCart(userID, req.PartID)
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			apperrors.NotFound(c, apperrors.PartNotFound, "Part not found")
			return
		}
		log.Error("Failed to add part to cart", err, map[string]interface{}{
			"user_id": userID,
			"part_id": req.PartID,
		})
		apperrors.InternalError(c, "Failed to add part to cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// IncreaseItem bumps a cart line by one unit
// POST /api/v1/cart/:id/increase
func (ctrl *CartController) IncreaseItem(c *gin.Context) {
	ctrl.adjustQuantity(c, ctrl.cartService.IncreaseQuantity)
}

// DecreaseItem lowers a cart line by one unit, removing it at quantity 1
// POST /api/v1/cart/:id/decrease
func (ctrl *CartController) DecreaseItem(c *gin.Context) {
	ctrl.adjustQuantity(c, ctrl.cartService.DecreaseQuantity)
}

func (ctrl *CartController) adjustQuantity(c *gin.Context, adjust func(userID, itemID uint) (*model.CartItem, error)) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := adjust(userID, itemID)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to adjust cart quantity", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		apperrors.InternalError(c, "Failed to update cart")
		return
	}

	if item == nil {
		c.JSON(http.StatusOK, gin.H{"removed": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveItem deletes a cart line outright
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, itemID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		apperrors.InternalError(c, "Failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}
