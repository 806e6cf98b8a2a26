package repository

import (
	"context"

	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"gorm.io/gorm"
)

type ProcessRepository struct {
	db *gorm.DB
}

func NewProcessRepository(db *gorm.DB) *ProcessRepository {
	return &ProcessRepository{db: db}
}

func (r *ProcessRepository) Create(ctx context.Context, p *entity.ProcessConfig) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProcessRepository) Update(ctx context.Context, p *entity.ProcessConfig) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProcessRepository) FindByID(ctx context.Context, id string) (*entity.ProcessConfig, error) {
	var p entity.ProcessConfig
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (r *ProcessRepository) FindByName(ctx context.Context, name string) (*entity.ProcessConfig, error) {
	var p entity.ProcessConfig
	err := r.db.WithContext(ctx).First(&p, "name = ?", name).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (r *ProcessRepository) List(ctx context.Context) ([]entity.ProcessConfig, error) {
	var processes []entity.ProcessConfig
	err := r.db.WithContext(ctx).Order("name ASC").Find(&processes).Error
	return processes, err
}

func (r *ProcessRepository) ListActive(ctx context.Context) ([]entity.ProcessConfig, error) {
	var processes []entity.ProcessConfig
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&processes).Error
	return processes, err
}
