package scheduler

import (
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/app/service"
	"github.com/carhive/carhive-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CatalogScheduler re-warms the public car listing cache so the first
// visitor after an invalidation does not pay the query cost.
type CatalogScheduler struct {
	cron       *cron.Cron
	carService service.CarService
}

func NewCatalogScheduler(carService service.CarService) *CatalogScheduler {
	return &CatalogScheduler{
		cron:       cron.New(),
		carService: carService,
	}
}

func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc("@every 1h", func() {
		logger.Info("Starting scheduled catalog cache warm-up", nil)

		status := model.CarStatusAvailable
		if _, err := s.carService.ListPublic(repository.CarFilter{Status: &status}); err != nil {
			logger.Error("Catalog cache warm-up failed", err)
			return
		}
		if _, err := s.carService.ListPublic(repository.CarFilter{}); err != nil {
			logger.Error("Catalog cache warm-up failed", err)
			return
		}

		logger.Info("Catalog cache warm-up completed", nil)
	})
	if err != nil {
		logger.Error("Failed to add cron job for catalog warm-up", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started (hourly warm-up)", nil)
	return nil
}

func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog scheduler...", nil)
	s.cron.Stop()
}
