package service

import (
	"errors"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/pkg/logger"
	"github.com/carhive/carhive-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrRequestNotFound = errors.New("company request not found")
var ErrRequestReviewed = errors.New("company request already reviewed")

type CompanyInput struct {
	Name            string
	Country         string
	Description     string
	LogoURL         string
	EstablishedYear *int
}

type CompanyRequestInput struct {
	CompanyName       string
	Country           string
	Description       string
	EstablishedYear   *int
	ContactEmail      string
	ContactPhone      string
	RequestedUsername string
	RequestedPassword string
}

type CompanyService interface {
	ListCompanies() ([]model.Company, error)
	GetCompany(id uint) (*model.Company, error)
	GetMyCompany(userID uint) (*model.Company, error)
	UpdateMyCompany(userID uint, input CompanyInput) (*model.Company, error)
	AdminCreateCompany(input CompanyInput, username, password string) (*model.Company, error)
	AdminUpdateCompany(companyID uint, input CompanyInput) (*model.Company, error)
	AdminDeleteCompany(companyID uint) error
	SubmitRequest(input CompanyRequestInput) (*model.CompanyRequest, error)
	ListRequests() ([]model.CompanyRequest, error)
	ApproveRequest(requestID uint, adminNotes string) (*model.CompanyRequest, error)
	RejectRequest(requestID uint, adminNotes string) (*model.CompanyRequest, error)
}

type companyService struct {
	db            *gorm.DB
	companyRepo   repository.CompanyRepository
	requestRepo   repository.CompanyRequestRepository
	userRepo      repository.UserRepository
	notifications NotificationService
}

func NewCompanyService(db *gorm.DB, companyRepo repository.CompanyRepository, requestRepo repository.CompanyRequestRepository, userRepo repository.UserRepository, notifications NotificationService) CompanyService {
	return &companyService{
		db:            db,
		companyRepo:   companyRepo,
		requestRepo:   requestRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *companyService) ListCompanies() ([]model.Company, error) {
	return s.companyRepo.FindAll()
}

func (s *companyService) GetCompany(id uint) (*model.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetMyCompany(userID uint) (*model.Company, error) {
	company, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) UpdateMyCompany(userID uint, input CompanyInput) (*model.Company, error) {
	company, err := s.GetMyCompany(userID)
	if err != nil {
		return nil, err
	}
	return s.applyCompanyUpdate(company, input)
}

// AdminCreateCompany registers a company directly, bypassing the onboarding
// queue. With a username it also provisions the login in the same
// transaction; without one the company is catalog-only until claimed.
func (s *companyService) AdminCreateCompany(input CompanyInput, username, password string) (*model.Company, error) {
	company := &model.Company{
		Name:            input.Name,
		Country:         input.Country,
		Description:     input.Description,
		LogoURL:         input.LogoURL,
		EstablishedYear: input.EstablishedYear,
	}

	if username == "" {
		if err := s.companyRepo.Create(company); err != nil {
			return nil, err
		}
		logger.Info("Company created without account", map[string]interface{}{
			"company_id": company.ID,
		})
		return company, nil
	}

	taken, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameExists
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash company account password", err, nil)
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := &model.User{
			Username:     username,
			PasswordHash: hash,
			Role:         model.RoleCompany,
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		company.UserID = &user.ID
		return tx.Create(company).Error
	})
	if err != nil {
		logger.Error("Failed to create company", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Company created with account", map[string]interface{}{
		"company_id": company.ID,
		"username":   username,
	})
	return company, nil
}

func (s *companyService) AdminUpdateCompany(companyID uint, input CompanyInput) (*model.Company, error) {
	company, err := s.GetCompany(companyID)
	if err != nil {
		return nil, err
	}
	return s.applyCompanyUpdate(company, input)
}

func (s *companyService) applyCompanyUpdate(company *model.Company, input CompanyInput) (*model.Company, error) {
	company.Name = input.Name
	company.Country = input.Country
	company.Description = input.Description
	if input.LogoURL != "" {
		company.LogoURL = input.LogoURL
	}
	if input.EstablishedYear != nil {
		company.EstablishedYear = input.EstablishedYear
	}

	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}

	logger.Info("Company profile updated", map[string]interface{}{
		"company_id": company.ID,
	})
	return company, nil
}

// AdminDeleteCompany retires a company and everything it sells in one
// transaction. Dependents are removed before the listings so the listing
// subqueries still see them. Order line items are left alone: buyers keep
// their purchase history as snapshots.
func (s *companyService) AdminDeleteCompany(companyID uint) error {
	logger.Info("Deleting company", map[string]interface{}{
		"company_id": companyID,
	})

	return s.db.Transaction(func(tx *gorm.DB) error {
		var company model.Company
		if err := tx.First(&company, companyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}

		carIDs := tx.Model(&model.Car{}).Select("id").Where("company_id = ?", companyID)
		if err := tx.Where("car_id IN (?)", carIDs).Delete(&model.TestDrive{}).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id IN (?)", carIDs).Delete(&model.LoanApplication{}).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id IN (?)", carIDs).Delete(&model.CarPurchase{}).Error; err != nil {
			return err
		}

		partIDs := tx.Model(&model.Part{}).Select("id").Where("company_id = ?", companyID)
		if err := tx.Where("part_id IN (?)", partIDs).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		if err := tx.Where("company_id = ?", companyID).Delete(&model.Car{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", companyID).Delete(&model.Part{}).Error; err != nil {
			return err
		}

		if company.UserID != nil {
			if err := tx.Delete(&model.User{}, *company.UserID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&company).Error
	})
}

// SubmitRequest files a public onboarding request. The password is hashed at
// rest immediately; the plaintext never leaves this function.
func (s *companyService) SubmitRequest(input CompanyRequestInput) (*model.CompanyRequest, error) {
	hash, err := util.HashPassword(input.RequestedPassword)
	if err != nil {
		logger.Error("Failed to hash requested password", err, nil)
		return nil, err
	}

	request := &model.CompanyRequest{
		CompanyName:       input.CompanyName,
		Country:           input.Country,
		Description:       input.Description,
		EstablishedYear:   input.EstablishedYear,
		ContactEmail:      input.ContactEmail,
		ContactPhone:      input.ContactPhone,
		RequestedUsername: input.RequestedUsername,
		RequestedPassword: hash,
		Status:            model.CompanyRequestPending,
	}

	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}

	logger.Info("Company request submitted", map[string]interface{}{
		"request_id":   request.ID,
		"company_name": request.CompanyName,
	})
	return request, nil
}

func (s *companyService) ListRequests() ([]model.CompanyRequest, error) {
	return s.requestRepo.FindAll()
}

// ApproveRequest provisions the company account and its profile atomically.
// A taken username fails the approval and leaves the request pending, so the
// admin can ask the applicant for a different name and try again.
func (s *companyService) ApproveRequest(requestID uint, adminNotes string) (*model.CompanyRequest, error) {
	request, err := s.pendingRequest(requestID)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(request.RequestedUsername)
	if err != nil {
		return nil, err
	}
	if taken {
		logger.Warn("Company approval blocked: username taken", map[string]interface{}{
			"request_id":         requestID,
			"requested_username": request.RequestedUsername,
		})
		return nil, ErrUsernameExists
	}

	var ownerID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := &model.User{
			Username:     request.RequestedUsername,
			Email:        request.ContactEmail,
			PasswordHash: request.RequestedPassword,
			Role:         model.RoleCompany,
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		ownerID = user.ID

		company := &model.Company{
			UserID:          &user.ID,
			Name:            request.CompanyName,
			Country:         request.Country,
			Description:     request.Description,
			EstablishedYear: request.EstablishedYear,
		}
		if err := tx.Create(company).Error; err != nil {
			return err
		}

		request.Status = model.CompanyRequestApproved
		request.AdminNotes = adminNotes
		return tx.Save(request).Error
	})
	if err != nil {
		logger.Error("Company approval failed", err, map[string]interface{}{
			"request_id": requestID,
		})
		return nil, err
	}

	s.notifications.Notify(ownerID, model.NotificationCompanyRequest,
		"Welcome aboard", "Your company application for "+request.CompanyName+" has been approved.", request.ID)

	logger.Info("Company request approved", map[string]interface{}{
		"request_id":   requestID,
		"company_name": request.CompanyName,
	})
	return request, nil
}

func (s *companyService) RejectRequest(requestID uint, adminNotes string) (*model.CompanyRequest, error) {
	request, err := s.pendingRequest(requestID)
	if err != nil {
		return nil, err
	}

	request.Status = model.CompanyRequestRejected
	request.AdminNotes = adminNotes
	if err := s.requestRepo.Update(request); err != nil {
		return nil, err
	}

	logger.Info("Company request rejected", map[string]interface{}{
		"request_id": requestID,
	})
	return request, nil
}

func (s *companyService) pendingRequest(requestID uint) (*model.CompanyRequest, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if request.Reviewed() {
		return nil, ErrRequestReviewed
	}
	return request, nil
}
