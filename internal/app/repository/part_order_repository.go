package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type PartOrderRepository interface {
	Create(tx *gorm.DB, order *model.PartOrder) error
	FindByID(id uint) (*model.PartOrder, error)
	FindByUserID(userID uint) ([]model.PartOrder, error)
	FindAll() ([]model.PartOrder, error)
	Update(order *model.PartOrder) error
	FindItemsByCompanyID(companyID uint) ([]model.PartOrderItem, error)
	Count() (int64, error)
	SumRevenue() (float64, error)
}

type partOrderRepository struct {
	db *gorm.DB
}

func NewPartOrderRepository(db *gorm.DB) PartOrderRepository {
	return &partOrderRepository{db: db}
}

// Create inserts the order together with its items. When tx is non-nil the
// insert joins the caller's transaction.
func (r *partOrderRepository) Create(tx *gorm.DB, order *model.PartOrder) error {
	if tx == nil {
		tx = r.db
	}

	logger.Debug("Creating part order in database", map[string]interface{}{
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"items_count":  len(order.Items),
	})

	if err := tx.Create(order).Error; err != nil {
		logger.Error("Failed to create part order in database", err, map[string]interface{}{
			"user_id": order.UserID,
		})
		return err
	}
	return nil
}

func (r *partOrderRepository) FindByID(id uint) (*model.PartOrder, error) {
	var order model.PartOrder
	err := r.db.Preload("Items").Preload("Items.Part").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *partOrderRepository) FindByUserID(userID uint) ([]model.PartOrder, error) {
	var orders []model.PartOrder
	err := r.db.Preload("Items").Preload("Items.Part").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list part orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *partOrderRepository) FindAll() ([]model.PartOrder, error) {
	var orders []model.PartOrder
	err := r.db.Preload("Items").Preload("Items.Part").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list all part orders", err, nil)
		return nil, err
	}
	return orders, nil
}

func (r *partOrderRepository) Update(order *model.PartOrder) error {
	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update part order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

// FindItemsByCompanyID returns sold line items for parts the company listed.
// Deleted parts still show up here because items carry their own snapshot.
func (r *partOrderRepository) FindItemsByCompanyID(companyID uint) ([]model.PartOrderItem, error) {
	var items []model.PartOrderItem
	err := r.db.Preload("Part").Preload("Order").
		Joins("JOIN parts ON parts.id = part_order_items.part_id").
		Where("parts.company_id = ?", companyID).
		Order("part_order_items.created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to list order items by company", err, map[string]interface{}{
			"company_id": companyID,
		})
		return nil, err
	}
	return items, nil
}

func (r *partOrderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.PartOrder{}).Count(&count).Error
	return count, err
}

func (r *partOrderRepository) SumRevenue() (float64, error) {
	var total float64
	err := r.db.Model(&model.PartOrder{}).
		Where("status <> ?", model.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}
