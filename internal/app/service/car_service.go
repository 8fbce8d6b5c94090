package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/pkg/logger"
	"github.com/carhive/carhive-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrNotOwner        = errors.New("resource belongs to another company")
	ErrInvalidStatus   = errors.New("invalid status value")
)

const listingCacheTTL = 5 * time.Minute

type CarInput struct {
	Model       string
	Year        int
	Price       float64
	Color       string
	FuelType    model.FuelType
	Mileage     int
	Description string
	ImageURL    string
}

type CarService interface {
	ListPublic(filter repository.CarFilter) ([]model.Car, error)
	GetCar(id uint) (*model.Car, error)
	ListCompanyCars(userID uint) ([]model.Car, error)
	CreateCar(userID uint, input CarInput) (*model.Car, error)
	UpdateCar(userID uint, carID uint, input CarInput) (*model.Car, error)
	UpdateCarStatus(userID uint, carID uint, status model.CarStatus) (*model.Car, error)
	DeleteCar(userID uint, carID uint) error
}

type carService struct {
	carRepo     repository.CarRepository
	companyRepo repository.CompanyRepository
}

func NewCarService(carRepo repository.CarRepository, companyRepo repository.CompanyRepository) CarService {
	return &carService{
		carRepo:     carRepo,
		companyRepo: companyRepo,
	}
}

// ListPublic serves the public catalog. Results are cached per filter for a
// few minutes and invalidated on any catalog mutation.
func (s *carService) ListPublic(filter repository.CarFilter) ([]model.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := listingCacheKey(filter)
	if payload, ok := redis.GetCachedListing(ctx, key); ok {
		var cars []model.Car
		if err := json.Unmarshal(payload, &cars); err == nil {
			logger.Debug("Serving car listing from cache", map[string]interface{}{
				"cache_key": key,
			})
			return cars, nil
		}
	}

	cars, err := s.carRepo.Search(filter)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(cars); err == nil {
		redis.SetCachedListing(ctx, key, payload, listingCacheTTL)
	}
	return cars, nil
}

func (s *carService) GetCar(id uint) (*model.Car, error) {
	car, err := s.carRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *carService) ListCompanyCars(userID uint) ([]model.Car, error) {
	company, err := s.actingCompany(userID)
	if err != nil {
		return nil, err
	}
	return s.carRepo.FindByCompanyID(company.ID)
}

func (s *carService) CreateCar(userID uint, input CarInput) (*model.Car, error) {
	company, err := s.actingCompany(userID)
	if err != nil {
		return nil, err
	}

	car := &model.Car{
		CompanyID:   company.ID,
		Model:       input.Model,
		Year:        input.Year,
		Price:       input.Price,
		Color:       input.Color,
		FuelType:    input.FuelType,
		Mileage:     input.Mileage,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Status:      model.CarStatusAvailable,
	}

	if err := s.carRepo.Create(car); err != nil {
		return nil, err
	}

	logger.Info("Car listed", map[string]interface{}{
		"car_id":     car.ID,
		"company_id": company.ID,
		"model":      car.Model,
	})

	s.invalidateListings()
	return car, nil
}

func (s *carService) UpdateCar(userID uint, carID uint, input CarInput) (*model.Car, error) {
	car, err := s.ownedCar(userID, carID)
	if err != nil {
		return nil, err
	}

	car.Model = input.Model
	car.Year = input.Year
	car.Price = input.Price
	car.Color = input.Color
	car.FuelType = input.FuelType
	car.Mileage = input.Mileage
	car.Description = input.Description
	if input.ImageURL != "" {
		car.ImageURL = input.ImageURL
	}

	if err := s.carRepo.Update(car); err != nil {
		return nil, err
	}

	s.invalidateListings()
	return car, nil
}

// UpdateCarStatus lets the seller set any valid status directly. This is how
// a reserved car goes back to available after a purchase falls through.
func (s *carService) UpdateCarStatus(userID uint, carID uint, status model.CarStatus) (*model.Car, error) {
	if !model.ValidCarStatus(status) {
		return nil, ErrInvalidStatus
	}

	car, err := s.ownedCar(userID, carID)
	if err != nil {
		return nil, err
	}

	car.Status = status
	if err := s.carRepo.Update(car); err != nil {
		return nil, err
	}

	logger.Info("Car status updated", map[string]interface{}{
		"car_id": carID,
		"status": status,
	})

	s.invalidateListings()
	return car, nil
}

func (s *carService) DeleteCar(userID uint, carID uint) error {
	car, err := s.ownedCar(userID, carID)
	if err != nil {
		return err
	}

	if err := s.carRepo.Delete(car.ID); err != nil {
		return err
	}

	logger.Info("Car delisted", map[string]interface{}{
		"car_id": carID,
	})

	s.invalidateListings()
	return nil
}

// ownedCar loads the car and verifies it belongs to the acting company.
// A car owned by someone else is an ownership failure, not a missing record:
// the caller could see it in the public catalog.
func (s *carService) ownedCar(userID uint, carID uint) (*model.Car, error) {
	company, err := s.actingCompany(userID)
	if err != nil {
		return nil, err
	}

	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	if car.CompanyID != company.ID {
		logger.Warn("Cross-company car mutation rejected", map[string]interface{}{
			"car_id":       carID,
			"car_company":  car.CompanyID,
			"user_company": company.ID,
		})
		return nil, ErrNotOwner
	}
	return car, nil
}

func (s *carService) actingCompany(userID uint) (*model.Company, error) {
	company, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *carService) invalidateListings() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	redis.InvalidateCatalog(ctx)
}

func listingCacheKey(filter repository.CarFilter) string {
	companyID := uint(0)
	if filter.CompanyID != nil {
		companyID = *filter.CompanyID
	}
	status := ""
	if filter.Status != nil {
		status = string(*filter.Status)
	}
	return fmt.Sprintf("%s|%d|%s", filter.Search, companyID, status)
}
