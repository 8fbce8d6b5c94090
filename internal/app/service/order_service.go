package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type CheckoutInput struct {
	PaymentMethod   model.PaymentMethod
	ShippingAddress string
}

type OrderService interface {
	Checkout(userID uint, input CheckoutInput) (*model.PartOrder, error)
	GetUserOrders(userID uint) ([]model.PartOrder, error)
	GetOrder(userID uint, orderID uint) (*model.PartOrder, error)
	Pay(userID uint, orderID uint) (*model.PartOrder, error)
	Cancel(userID uint, orderID uint) (*model.PartOrder, error)
	UpdateStatus(orderID uint, status model.OrderStatus) (*model.PartOrder, error)
	GetAllOrders() ([]model.PartOrder, error)
	GetCompanySoldItems(companyID uint) ([]model.PartOrderItem, error)
}

type orderService struct {
	db            *gorm.DB
	orderRepo     repository.PartOrderRepository
	cartRepo      repository.CartRepository
	notifications NotificationService
}

func NewOrderService(db *gorm.DB, orderRepo repository.PartOrderRepository, cartRepo repository.CartRepository, notifications NotificationService) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		notifications: notifications,
	}
}

// Checkout converts the whole cart into one order atomically: the order and
// its items are written and the cart is cleared in a single transaction, so a
// failure leaves both cart and orders untouched. Item prices are frozen at
// checkout time; later part edits never change what was charged.
func (s *orderService) Checkout(userID uint, input CheckoutInput) (*model.PartOrder, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id":        userID,
		"payment_method": input.PaymentMethod,
	})

	var order *model.PartOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []model.CartItem
		if err := lockForUpdate(tx).
			Preload("Part").
			Where("user_id = ?", userID).
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		order = &model.PartOrder{
			UserID:          userID,
			Status:          model.OrderStatusPending,
			PaymentMethod:   input.PaymentMethod,
			ShippingAddress: input.ShippingAddress,
		}
		for _, item := range items {
			order.TotalAmount += item.Subtotal()
			order.Items = append(order.Items, model.PartOrderItem{
				PartID:   item.PartID,
				Quantity: item.Quantity,
				Price:    item.Part.Price,
			})
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return s.cartRepo.DeleteByUserID(tx, userID)
	})
	if err != nil {
		if !errors.Is(err, ErrCartEmpty) {
			logger.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
		"items_count":  len(order.Items),
	})

	s.notifications.Notify(userID, model.NotificationOrder,
		"Order placed",
		fmt.Sprintf("Your order #%d for %.2f has been placed.", order.ID, order.TotalAmount),
		order.ID)
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.PartOrder, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrder(userID uint, orderID uint) (*model.PartOrder, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Pay settles a pending order: it transitions to paid, stamps the payment
// time and assigns a transaction id.
func (s *orderService) Pay(userID uint, orderID uint) (*model.PartOrder, error) {
	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(model.OrderStatusPaid) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	order.Status = model.OrderStatusPaid
	order.PaymentDate = &now
	order.TransactionID = uuid.NewString()

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order paid", map[string]interface{}{
		"order_id":       order.ID,
		"transaction_id": order.TransactionID,
	})

	s.notifications.Notify(userID, model.NotificationOrder,
		"Payment received",
		fmt.Sprintf("Payment for order #%d has been recorded.", order.ID),
		order.ID)
	return order, nil
}

func (s *orderService) Cancel(userID uint, orderID uint) (*model.PartOrder, error) {
	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(model.OrderStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	order.Status = model.OrderStatusCancelled
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
	})
	return order, nil
}

// UpdateStatus is the fulfilment-side transition (admin only at the router).
func (s *orderService) UpdateStatus(orderID uint, status model.OrderStatus) (*model.PartOrder, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !order.Status.CanTransition(status) {
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return nil, ErrInvalidTransition
	}

	if status == model.OrderStatusPaid && order.PaymentDate == nil {
		now := time.Now()
		order.PaymentDate = &now
		order.TransactionID = uuid.NewString()
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	s.notifications.Notify(order.UserID, model.NotificationOrder,
		"Order updated",
		fmt.Sprintf("Order #%d is now %s.", order.ID, status),
		order.ID)
	return order, nil
}

func (s *orderService) GetAllOrders() ([]model.PartOrder, error) {
	return s.orderRepo.FindAll()
}

// GetCompanySoldItems lists line items of the company's parts across all
// orders, newest first.
func (s *orderService) GetCompanySoldItems(companyID uint) ([]model.PartOrderItem, error) {
	return s.orderRepo.FindItemsByCompanyID(companyID)
}
