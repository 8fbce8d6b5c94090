package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(item *model.CartItem) error
	FindByID(id uint) (*model.CartItem, error)
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByUserAndPart(userID, partID uint) (*model.CartItem, error)
	Update(item *model.CartItem) error
	Delete(id uint) error
	DeleteByUserID(tx *gorm.DB, userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id": item.UserID,
		"part_id": item.PartID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id": item.UserID,
			"part_id": item.PartID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Preload("Part").Preload("Part.Company").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Preload("Part").Preload("Part.Company").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to list cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindByUserAndPart(userID, partID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("user_id = ? AND part_id = ?", userID, partID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Update(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}

// DeleteByUserID clears the whole cart inside the caller's transaction.
// Checkout relies on this running atomically with order creation.
func (r *cartRepository) DeleteByUserID(tx *gorm.DB, userID uint) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
