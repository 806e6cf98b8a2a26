package repository

import (
	"context"

	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"gorm.io/gorm"
)

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) Create(ctx context.Context, w *entity.Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WorkerRepository) Update(ctx context.Context, w *entity.Worker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*entity.Worker, error) {
	var w entity.Worker
	err := r.db.WithContext(ctx).Preload("Schedules").First(&w, "id = ?", id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &w, nil
}

func (r *WorkerRepository) List(ctx context.Context) ([]entity.Worker, error) {
	var workers []entity.Worker
	err := r.db.WithContext(ctx).Preload("Schedules").Order("name ASC").Find(&workers).Error
	return workers, err
}

func (r *WorkerRepository) ListActiveWithSchedules(ctx context.Context) ([]entity.Worker, error) {
	var workers []entity.Worker
	err := r.db.WithContext(ctx).
		Preload("Schedules", "active = ?", true).
		Where("active = ?", true).
		Order("name ASC").
		Find(&workers).Error
	return workers, err
}

// ========== schedules ==========

func (r *WorkerRepository) CreateSchedule(ctx context.Context, s *entity.WorkerSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *WorkerRepository) UpdateSchedule(ctx context.Context, s *entity.WorkerSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *WorkerRepository) FindScheduleByID(ctx context.Context, id string) (*entity.WorkerSchedule, error) {
	var s entity.WorkerSchedule
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &s, nil
}

func (r *WorkerRepository) DeleteSchedule(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&entity.WorkerSchedule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
