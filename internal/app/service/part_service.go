package service

import (
	"errors"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type PartInput struct {
	Name             string
	Category         string
	Price            float64
	Stock            int
	Description      string
	ImageURL         string
	CompatibleCarIDs []uint
}

type PartService interface {
	ListPublic(filter repository.PartFilter) ([]model.Part, error)
	GetPart(id uint) (*model.Part, error)
	ListCompanyParts(userID uint) ([]model.Part, error)
	CreatePart(userID uint, input PartInput) (*model.Part, error)
	UpdatePart(userID uint, partID uint, input PartInput) (*model.Part, error)
	DeletePart(userID uint, partID uint) error
}

type partService struct {
	partRepo    repository.PartRepository
	carRepo     repository.CarRepository
	companyRepo repository.CompanyRepository
}

func NewPartService(partRepo repository.PartRepository, carRepo repository.CarRepository, companyRepo repository.CompanyRepository) PartService {
	return &partService{
		partRepo:    partRepo,
		carRepo:     carRepo,
		companyRepo: companyRepo,
	}
}

func (s *partService) ListPublic(filter repository.PartFilter) ([]model.Part, error) {
	return s.partRepo.Search(filter)
}

func (s *partService) GetPart(id uint) (*model.Part, error) {
	part, err := s.partRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return part, nil
}

func (s *partService) ListCompanyParts(userID uint) ([]model.Part, error) {
	company, err := s.actingCompany(userID)
	if err != nil {
		return nil, err
	}
	return s.partRepo.FindByCompanyID(company.ID)
}

func (s *partService) CreatePart(userID uint, input PartInput) (*model.Part, error) {
	company, err := s.actingCompany(userID)
	if err != nil {
		return nil, err
	}

	part := &model.Part{
		CompanyID:   company.ID,
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	if err := s.partRepo.Create(part); err != nil {
		return nil, err
	}

	if len(input.CompatibleCarIDs) > 0 {
		if err := s.linkCompatibleCars(part, input.CompatibleCarIDs); err != nil {
			return nil, err
		}
	}

	logger.Info("Part listed", map[string]interface{}{
		"part_id":    part.ID,
		"company_id": company.ID,
		"name":       part.Name,
	})
	return part, nil
}

func (s *partService) UpdatePart(userID uint, partID uint, input PartInput) (*model.Part, error) {
	part, err := s.ownedPart(userID, partID)
	if err != nil {
		return nil, err
	}

	part.Name = input.Name
	part.Category = input.Category
	part.Price = input.Price
	part.Stock = input.Stock
	part.Description = input.Description
	if input.ImageURL != "" {
		part.ImageURL = input.ImageURL
	}

	if err := s.partRepo.Update(part); err != nil {
		return nil, err
	}

	if input.CompatibleCarIDs != nil {
		if err := s.linkCompatibleCars(part, input.CompatibleCarIDs); err != nil {
			return nil, err
		}
	}
	return part, nil
}

func (s *partService) DeletePart(userID uint, partID uint) error {
	part, err := s.ownedPart(userID, partID)
	if err != nil {
		return err
	}

	if err := s.partRepo.Delete(part.ID); err != nil {
		return err
	}

	logger.Info("Part delisted", map[string]interface{}{
		"part_id": partID,
	})
	return nil
}

// linkCompatibleCars resolves the ids and replaces the compatibility list.
// Unknown car ids are an error rather than silently dropped.
func (s *partService) linkCompatibleCars(part *model.Part, carIDs []uint) error {
	cars := make([]model.Car, 0, len(carIDs))
	for _, id := range carIDs {
		car, err := s.carRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return err
		}
		cars = append(cars, *car)
	}
	return s.partRepo.ReplaceCompatibleCars(part, cars)
}

func (s *partService) ownedPart(userID uint, partID uint) (*model.Part, error) {
	company, err := s.actingCompany(userID)
	if err != nil {
		return nil, err
	}

	part, err := s.partRepo.FindByID(partID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	if part.CompanyID != company.ID {
		logger.Warn("Cross-company part mutation rejected", map[string]interface{}{
			"part_id":      partID,
			"part_company": part.CompanyID,
			"user_company": company.ID,
		})
		return nil, ErrNotOwner
	}
	return part, nil
}

func (s *partService) actingCompany(userID uint) (*model.Company, error) {
	company, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}
