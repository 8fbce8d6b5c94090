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
	ErrCarNotFound      = errors.New("car not found")
	ErrCarNotAvailable  = errors.New("car is not available for purchase")
	ErrPurchaseNotFound = errors.New("purchase not found")
)

type PurchaseService interface {
	BuyCar(userID, carID uint, paymentMethod model.PaymentMethod) (*model.CarPurchase, error)
	GetUserPurchases(userID uint) ([]model.CarPurchase, error)
	GetPurchase(userID uint, purchaseID uint) (*model.CarPurchase, error)
	GetCompanyPurchases(companyID uint) ([]model.CarPurchase, error)
	GetAllPurchases() ([]model.CarPurchase, error)
	Resolve(purchaseID uint, status model.PurchaseStatus) (*model.CarPurchase, error)
}

type purchaseService struct {
	db            *gorm.DB
	purchaseRepo  repository.CarPurchaseRepository
	notifications NotificationService
}

func NewPurchaseService(db *gorm.DB, purchaseRepo repository.CarPurchaseRepository, notifications NotificationService) PurchaseService {
	return &purchaseService{
		db:            db,
		purchaseRepo:  purchaseRepo,
		notifications: notifications,
	}
}

// BuyCar opens a pending purchase and reserves the car. The car row is
// locked for the duration of the transaction and only an available car can
// be bought, so two buyers cannot reserve the same car. The price is frozen
// on the purchase; later listing edits do not change it.
func (s *purchaseService) BuyCar(userID, carID uint, paymentMethod model.PaymentMethod) (*model.CarPurchase, error) {
	logger.Info("Starting car purchase", map[string]interface{}{
		"user_id": userID,
		"car_id":  carID,
	})

	var purchase *model.CarPurchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var car model.Car
		if err := lockForUpdate(tx).First(&car, carID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return err
		}
		if car.Status != model.CarStatusAvailable {
			return ErrCarNotAvailable
		}

		purchase = &model.CarPurchase{
			UserID:        userID,
			CarID:         car.ID,
			TotalPrice:    car.Price,
			Status:        model.PurchaseStatusPending,
			PaymentMethod: paymentMethod,
		}
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		return tx.Model(&car).Update("status", model.CarStatusReserved).Error
	})
	if err != nil {
		if errors.Is(err, ErrCarNotAvailable) {
			logger.Warn("Car purchase rejected: not available", map[string]interface{}{
				"user_id": userID,
				"car_id":  carID,
			})
		} else if !errors.Is(err, ErrCarNotFound) {
			logger.Error("Car purchase failed", err, map[string]interface{}{
				"user_id": userID,
				"car_id":  carID,
			})
		}
		return nil, err
	}

	logger.Info("Car purchase created", map[string]interface{}{
		"purchase_id": purchase.ID,
		"user_id":     userID,
		"car_id":      carID,
		"total_price": purchase.TotalPrice,
	})

	s.notifications.Notify(userID, model.NotificationPurchase,
		"Purchase created",
		fmt.Sprintf("Your purchase #%d is pending. The car has been reserved for you.", purchase.ID),
		purchase.ID)
	return purchase, nil
}

func (s *purchaseService) GetUserPurchases(userID uint) ([]model.CarPurchase, error) {
	return s.purchaseRepo.FindByUserID(userID)
}

func (s *purchaseService) GetPurchase(userID uint, purchaseID uint) (*model.CarPurchase, error) {
	purchase, err := s.purchaseRepo.FindByID(purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	if purchase.UserID != userID {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *purchaseService) GetCompanyPurchases(companyID uint) ([]model.CarPurchase, error) {
	return s.purchaseRepo.FindByCompanyID(companyID)
}

func (s *purchaseService) GetAllPurchases() ([]model.CarPurchase, error) {
	return s.purchaseRepo.FindAll()
}

// Resolve moves a purchase along its lifecycle. Resolution never touches the
// car row: a cancelled purchase leaves the car reserved until the seller
// relists it through the catalog.
func (s *purchaseService) Resolve(purchaseID uint, status model.PurchaseStatus) (*model.CarPurchase, error) {
	purchase, err := s.purchaseRepo.FindByID(purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	if !purchase.Status.CanTransition(status) {
		logger.Warn("Rejected purchase status transition", map[string]interface{}{
			"purchase_id": purchaseID,
			"from":        purchase.Status,
			"to":          status,
		})
		return nil, ErrInvalidTransition
	}

	if status == model.PurchaseStatusPaid && purchase.PaymentDate == nil {
		now := time.Now()
		purchase.PaymentDate = &now
		purchase.TransactionID = uuid.NewString()
	}

	purchase.Status = status
	if err := s.purchaseRepo.Update(purchase); err != nil {
		return nil, err
	}

	logger.Info("Purchase status updated", map[string]interface{}{
		"purchase_id": purchaseID,
		"status":      status,
	})

	s.notifications.Notify(purchase.UserID, model.NotificationPurchase,
		"Purchase updated",
		fmt.Sprintf("Purchase #%d is now %s.", purchase.ID, status),
		purchase.ID)
	return purchase, nil
}
