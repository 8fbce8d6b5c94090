package service

import (
	"errors"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"gorm.io/gorm"
)

// UserActivity bundles a buyer's profile with everything they have done on
// the platform, for the admin detail view.
type UserActivity struct {
	User       *model.User             `json:"user"`
	Orders     []model.PartOrder       `json:"orders"`
	Purchases  []model.CarPurchase     `json:"purchases"`
	TestDrives []model.TestDrive       `json:"test_drives"`
	Loans      []model.LoanApplication `json:"loans"`
}

type UserService interface {
	ListUsers(search string) ([]model.User, error)
	GetUserActivity(userID uint) (*UserActivity, error)
}

type userService struct {
	userRepo      repository.UserRepository
	orderRepo     repository.PartOrderRepository
	purchaseRepo  repository.CarPurchaseRepository
	testDriveRepo repository.TestDriveRepository
	loanRepo      repository.LoanRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	orderRepo repository.PartOrderRepository,
	purchaseRepo repository.CarPurchaseRepository,
	testDriveRepo repository.TestDriveRepository,
	loanRepo repository.LoanRepository,
) UserService {
	return &userService{
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		purchaseRepo:  purchaseRepo,
		testDriveRepo: testDriveRepo,
		loanRepo:      loanRepo,
	}
}

// ListUsers returns the buyer directory, optionally filtered by username or
// email substring.
func (s *userService) ListUsers(search string) ([]model.User, error) {
	return s.userRepo.ListRegularUsers(search)
}

func (s *userService) GetUserActivity(userID uint) (*UserActivity, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	testDrives, err := s.testDriveRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	return &UserActivity{
		User:       user,
		Orders:     orders,
		Purchases:  purchases,
		TestDrives: testDrives,
		Loans:      loans,
	}, nil
}
