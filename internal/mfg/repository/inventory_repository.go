package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) ListAll(ctx context.Context) ([]entity.InventoryRecord, error) {
	var records []entity.InventoryRecord
	err := r.db.WithContext(ctx).Find(&records).Error
	return records, err
}

func (r *InventoryRepository) ListBySKU(ctx context.Context, skuID string) ([]entity.InventoryRecord, error) {
	var records []entity.InventoryRecord
	err := r.db.WithContext(ctx).Where("sku_id = ?", skuID).Find(&records).Error
	return records, err
}

func (r *InventoryRepository) ListTransactions(ctx context.Context, skuID string, limit int) ([]entity.InventoryTransaction, error) {
	var txs []entity.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("sku_id = ?", skuID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// Move applies a stock movement: delta is added to the (sku, state) record,
// which is created on first use, and an audit transaction is appended in
// the same database transaction. Movements that would take the record
// negative fail.
func (r *InventoryRepository) Move(ctx context.Context, skuID, state, txType string, delta float64, notes, userID string) (*entity.InventoryRecord, error) {
	var record entity.InventoryRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("sku_id = ? AND state = ?", skuID, state).First(&record).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			record = entity.InventoryRecord{
				ID:    uuid.New().String()[:32],
				SKUID: skuID,
				State: state,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		record.Quantity += delta
		if record.Quantity < 0 {
			return ErrInsufficientStock
		}
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		audit := entity.InventoryTransaction{
			ID:        uuid.New().String()[:32],
			SKUID:     skuID,
			State:     state,
			Type:      txType,
			Quantity:  delta,
			Notes:     notes,
			CreatedBy: userID,
			CreatedAt: time.Now(),
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
