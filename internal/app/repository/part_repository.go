package repository

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

// PartFilter narrows public part queries. Search matches the part name,
// the category and the selling company's name, case-insensitively.
type PartFilter struct {
	Search    string
	Category  string
	CompanyID *uint
}

type PartRepository interface {
	Create(part *model.Part) error
	FindByID(id uint) (*model.Part, error)
	FindByCompanyID(companyID uint) ([]model.Part, error)
	Search(filter PartFilter) ([]model.Part, error)
	Update(part *model.Part) error
	Delete(id uint) error
	ReplaceCompatibleCars(part *model.Part, cars []model.Car) error
	CountByCompanyID(companyID uint) (int64, error)
}

type partRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) Create(part *model.Part) error {
	logger.Debug("Creating part in database", map[string]interface{}{
		"company_id": part.CompanyID,
		"name":       part.Name,
	})

	if err := r.db.Create(part).Error; err != nil {
		logger.Error("Failed to create part in database", err, map[string]interface{}{
			"company_id": part.CompanyID,
			"name":       part.Name,
		})
		return err
	}
	return nil
}

func (r *partRepository) FindByID(id uint) (*model.Part, error) {
	var part model.Part
	err := r.db.Preload("Company").Preload("CompatibleCars").First(&part, id).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) FindByCompanyID(companyID uint) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&parts).Error
	if err != nil {
		logger.Error("Failed to list parts by company", err, map[string]interface{}{
			"company_id": companyID,
		})
		return nil, err
	}
	return parts, nil
}

func (r *partRepository) Search(filter PartFilter) ([]model.Part, error) {
	query := r.db.Model(&model.Part{}).
		Joins("Company").
		Order("parts.created_at DESC")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(parts.name) LIKE LOWER(?) OR LOWER(parts.category) LIKE LOWER(?) OR LOWER(\"Company\".name) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if filter.Category != "" {
		query = query.Where("parts.category = ?", filter.Category)
	}
	if filter.CompanyID != nil {
		query = query.Where("parts.company_id = ?", *filter.CompanyID)
	}

	var parts []model.Part
	if err := query.Find(&parts).Error; err != nil {
		logger.Error("Failed to search parts", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}
	return parts, nil
}

func (r *partRepository) Update(part *model.Part) error {
	if err := r.db.Save(part).Error; err != nil {
		logger.Error("Failed to update part in database", err, map[string]interface{}{
			"part_id": part.ID,
		})
		return err
	}
	return nil
}

func (r *partRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Part{}, id).Error; err != nil {
		logger.Error("Failed to delete part from database", err, map[string]interface{}{
			"part_id": id,
		})
		return err
	}
	return nil
}

// ReplaceCompatibleCars swaps the full compatibility list in one call.
func (r *partRepository) ReplaceCompatibleCars(part *model.Part, cars []model.Car) error {
	if err := r.db.Model(part).Association("CompatibleCars").Replace(cars); err != nil {
		logger.Error("Failed to replace compatible cars", err, map[string]interface{}{
			"part_id": part.ID,
		})
		return err
	}
	return nil
}

func (r *partRepository) CountByCompanyID(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Part{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}
