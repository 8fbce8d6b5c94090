package service

import (
	"errors"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPartNotFound     = errors.New("part not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// Cart summarises the user's open cart. The cart itself has no row of its
// own; it is just the set of the user's cart items.
type Cart struct {
	Items []model.CartItem `json:"items"`
	Total float64          `json:"total"`
}

type CartService interface {
	GetCart(userID uint) (*Cart, error)
	AddToCart(userID, partID uint) (*model.CartItem, error)
	IncreaseQuantity(userID, itemID uint) (*model.CartItem, error)
	DecreaseQuantity(userID, itemID uint) (*model.CartItem, error)
	RemoveItem(userID, itemID uint) error
}

type cartService struct {
	db       *gorm.DB
	cartRepo repository.CartRepository
	partRepo repository.PartRepository
}

func NewCartService(db *gorm.DB, cartRepo repository.CartRepository, partRepo repository.PartRepository) CartService {
	return &cartService{
		db:       db,
		cartRepo: cartRepo,
		partRepo: partRepo,
	}
}

func (s *cartService) GetCart(userID uint) (*Cart, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Items: items}
	for i := range items {
		cart.Total += items[i].Subtotal()
	}
	return cart, nil
}

// AddToCart adds one unit of the part. Repeated calls for the same part
// increment the existing line instead of creating duplicates.
func (s *cartService) AddToCart(userID, partID uint) (*model.CartItem, error) {
	logger.Info("Adding part to cart", map[string]interface{}{
		"user_id": userID,
		"part_id": partID,
	})

	if _, err := s.partRepo.FindByID(partID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}

	var item model.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("user_id = ? AND part_id = ?", userID, partID).
			First(&item).Error
		switch {
		case err == nil:
			item.Quantity++
			return tx.Save(&item).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = model.CartItem{UserID: userID, PartID: partID, Quantity: 1}
			return tx.Create(&item).Error
		default:
			return err
		}
	})
	if err != nil {
		logger.Error("Failed to add part to cart", err, map[string]interface{}{
			"user_id": userID,
			"part_id": partID,
		})
		return nil, err
	}

	logger.Info("Part added to cart", map[string]interface{}{
		"user_id":  userID,
		"part_id":  partID,
		"quantity": item.Quantity,
	})
	return &item, nil
}

func (s *cartService) IncreaseQuantity(userID, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.findOwnedItem(tx, userID, itemID, &item); err != nil {
			return err
		}
		item.Quantity++
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Cart quantity increased", map[string]interface{}{
		"cart_item_id": itemID,
		"quantity":     item.Quantity,
	})
	return &item, nil
}

// DecreaseQuantity lowers the line by one unit. At quantity 1 the line is
// removed entirely; the quantity never reaches zero.
func (s *cartService) DecreaseQuantity(userID, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	var removed bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.findOwnedItem(tx, userID, itemID, &item); err != nil {
			return err
		}
		if item.Quantity <= 1 {
			removed = true
			return tx.Delete(&item).Error
		}
		item.Quantity--
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}

	if removed {
		logger.Debug("Cart item removed by decrement", map[string]interface{}{
			"cart_item_id": itemID,
		})
		return nil, nil
	}
	return &item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint) error {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		return ErrCartItemNotFound
	}

	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})
	return s.cartRepo.Delete(itemID)
}

// findOwnedItem loads and row-locks the item, scoped to the owner. A foreign
// item id reads the same as a missing one.
func (s *cartService) findOwnedItem(tx *gorm.DB, userID, itemID uint, out *model.CartItem) error {
	err := lockForUpdate(tx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCartItemNotFound
	}
	return err
}
