package repository

import (
	"context"

	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ForecastRepository struct {
	db *gorm.DB
}

func NewForecastRepository(db *gorm.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

func (r *ForecastRepository) ListAll(ctx context.Context) ([]entity.Forecast, error) {
	var forecasts []entity.Forecast
	err := r.db.WithContext(ctx).Find(&forecasts).Error
	return forecasts, err
}

func (r *ForecastRepository) FindBySKU(ctx context.Context, skuID string) (*entity.Forecast, error) {
	var f entity.Forecast
	err := r.db.WithContext(ctx).First(&f, "sku_id = ?", skuID).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &f, nil
}

// Upsert writes the forecast line for a SKU, one row per SKU.
func (r *ForecastRepository) Upsert(ctx context.Context, f *entity.Forecast) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"forecasted_qty", "current_in_gallatin", "updated_by", "updated_at",
		}),
	}).Create(f).Error
}

func (r *ForecastRepository) Delete(ctx context.Context, skuID string) error {
	result := r.db.WithContext(ctx).Where("sku_id = ?", skuID).Delete(&entity.Forecast{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
