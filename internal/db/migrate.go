package db

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
	"github.com/carhive/carhive-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Company{},
		&model.CompanyRequest{},
		&model.Car{},
		&model.Part{},
		&model.CartItem{},
		&model.PartOrder{},
		&model.PartOrderItem{},
		&model.TestDrive{},
		&model.LoanApplication{},
		&model.CarPurchase{},
		&model.Notification{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// EnsureAdmin creates the bootstrap administrator account if none exists.
// Credentials come from the environment; nothing is created when the
// password is empty.
func EnsureAdmin(username, email, password string) error {
	if password == "" {
		logger.Info("Admin bootstrap skipped: no password configured")
		return nil
	}

	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(admin).Error; err != nil {
		logger.Error("Failed to create bootstrap admin", err)
		return err
	}

	logger.Info("Bootstrap admin created", map[string]interface{}{
		"username": username,
	})
	return nil
}
