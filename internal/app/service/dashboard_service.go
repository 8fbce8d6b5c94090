package service

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
)

// CompanyDashboard is the seller's at-a-glance inventory and demand view.
type CompanyDashboard struct {
	TotalCars         int64 `json:"total_cars"`
	AvailableCars     int64 `json:"available_cars"`
	ReservedCars      int64 `json:"reserved_cars"`
	SoldCars          int64 `json:"sold_cars"`
	TotalParts        int64 `json:"total_parts"`
	Purchases         int64 `json:"purchases"`
	PendingTestDrives int64 `json:"pending_test_drives"`
}

// AdminDashboard is the platform-wide operational summary.
type AdminDashboard struct {
	Users           int64   `json:"users"`
	Companies       int64   `json:"companies"`
	PendingRequests int64   `json:"pending_requests"`
	PendingLoans    int64   `json:"pending_loans"`
	Orders          int64   `json:"orders"`
	Purchases       int64   `json:"purchases"`
	OrderRevenue    float64 `json:"order_revenue"`
	PurchaseRevenue float64 `json:"purchase_revenue"`
}

type DashboardService interface {
	CompanyStats(userID uint) (*CompanyDashboard, error)
	AdminStats() (*AdminDashboard, error)
}

type dashboardService struct {
	companyRepo   repository.CompanyRepository
	carRepo       repository.CarRepository
	partRepo      repository.PartRepository
	purchaseRepo  repository.CarPurchaseRepository
	testDriveRepo repository.TestDriveRepository
	userRepo      repository.UserRepository
	requestRepo   repository.CompanyRequestRepository
	loanRepo      repository.LoanRepository
	orderRepo     repository.PartOrderRepository
}

func NewDashboardService(
	companyRepo repository.CompanyRepository,
	carRepo repository.CarRepository,
	partRepo repository.PartRepository,
	purchaseRepo repository.CarPurchaseRepository,
	testDriveRepo repository.TestDriveRepository,
	userRepo repository.UserRepository,
	requestRepo repository.CompanyRequestRepository,
	loanRepo repository.LoanRepository,
	orderRepo repository.PartOrderRepository,
) DashboardService {
	return &dashboardService{
		companyRepo:   companyRepo,
		carRepo:       carRepo,
		partRepo:      partRepo,
		purchaseRepo:  purchaseRepo,
		testDriveRepo: testDriveRepo,
		userRepo:      userRepo,
		requestRepo:   requestRepo,
		loanRepo:      loanRepo,
		orderRepo:     orderRepo,
	}
}

func (s *dashboardService) CompanyStats(userID uint) (*CompanyDashboard, error) {
	company, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		return nil, ErrCompanyNotFound
	}

	stats := &CompanyDashboard{}
	if stats.TotalCars, err = s.carRepo.CountByCompanyID(company.ID); err != nil {
		return nil, err
	}
	if stats.AvailableCars, err = s.carRepo.CountByCompanyIDAndStatus(company.ID, model.CarStatusAvailable); err != nil {
		return nil, err
	}
	if stats.ReservedCars, err = s.carRepo.CountByCompanyIDAndStatus(company.ID, model.CarStatusReserved); err != nil {
		return nil, err
	}
	if stats.SoldCars, err = s.carRepo.CountByCompanyIDAndStatus(company.ID, model.CarStatusSold); err != nil {
		return nil, err
	}
	if stats.TotalParts, err = s.partRepo.CountByCompanyID(company.ID); err != nil {
		return nil, err
	}
	if stats.Purchases, err = s.purchaseRepo.CountByCompanyID(company.ID); err != nil {
		return nil, err
	}
	if stats.PendingTestDrives, err = s.testDriveRepo.CountPendingByCompanyID(company.ID); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *dashboardService) AdminStats() (*AdminDashboard, error) {
	stats := &AdminDashboard{}
	var err error

	if stats.Users, err = s.userRepo.CountRegularUsers(); err != nil {
		return nil, err
	}
	if stats.Companies, err = s.companyRepo.Count(); err != nil {
		return nil, err
	}
	if stats.PendingRequests, err = s.requestRepo.CountPending(); err != nil {
		return nil, err
	}
	if stats.PendingLoans, err = s.loanRepo.CountPending(); err != nil {
		return nil, err
	}
	if stats.Orders, err = s.orderRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Purchases, err = s.purchaseRepo.Count(); err != nil {
		return nil, err
	}
	if stats.OrderRevenue, err = s.orderRepo.SumRevenue(); err != nil {
		return nil, err
	}
	if stats.PurchaseRevenue, err = s.purchaseRepo.SumRevenue(); err != nil {
		return nil, err
	}
	return stats, nil
}
