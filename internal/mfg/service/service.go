package service

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/config"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
	"go.uber.org/zap"
)

// ErrInvalidInput marks request errors the API reports as 400.
var ErrInvalidInput = errors.New("invalid input")

// Services bundles the application services.
type Services struct {
	Auth      *AuthService
	Catalog   *CatalogService
	Inventory *InventoryService
	Forecast  *ForecastService
	Process   *ProcessService
	Schedule  *ScheduleService
	Export    *ExportService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	catalogSvc := NewCatalogService(repos.SKU, rdb, logger)
	forecastSvc := NewForecastService(repos, rdb, cfg, logger)

	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg),
		Catalog:   catalogSvc,
		Inventory: NewInventoryService(repos.Inventory, repos.SKU, rdb),
		Forecast:  forecastSvc,
		Process:   NewProcessService(repos.Process, rdb),
		Schedule:  NewScheduleService(repos.Worker),
		Export:    NewExportService(forecastSvc),
	}
}
