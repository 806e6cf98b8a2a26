package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// wrapNotFound converts gorm's sentinel into the repository-level one so
// services never import gorm for error checks.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Repositories bundles every repository over one shared connection.
type Repositories struct {
	User      *UserRepository
	SKU       *SKURepository
	Inventory *InventoryRepository
	Forecast  *ForecastRepository
	Process   *ProcessRepository
	Worker    *WorkerRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		SKU:       NewSKURepository(db),
		Inventory: NewInventoryRepository(db),
		Forecast:  NewForecastRepository(db),
		Process:   NewProcessRepository(db),
		Worker:    NewWorkerRepository(db),
	}
}
