package repository

import (
	"context"

	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"gorm.io/gorm"
)

type SKURepository struct {
	db *gorm.DB
}

func NewSKURepository(db *gorm.DB) *SKURepository {
	return &SKURepository{db: db}
}

func (r *SKURepository) Create(ctx context.Context, sku *entity.SKU) error {
	return r.db.WithContext(ctx).Create(sku).Error
}

func (r *SKURepository) Update(ctx context.Context, sku *entity.SKU) error {
	return r.db.WithContext(ctx).Save(sku).Error
}

func (r *SKURepository) FindByID(ctx context.Context, id string) (*entity.SKU, error) {
	var sku entity.SKU
	err := r.db.WithContext(ctx).First(&sku, "id = ?", id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &sku, nil
}

func (r *SKURepository) FindByCode(ctx context.Context, code string) (*entity.SKU, error) {
	var sku entity.SKU
	err := r.db.WithContext(ctx).First(&sku, "code = ?", code).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &sku, nil
}

func (r *SKURepository) List(ctx context.Context, kind string, activeOnly bool, page, pageSize int) ([]entity.SKU, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.SKU{})
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var skus []entity.SKU
	err := q.Order("code ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&skus).Error
	return skus, total, err
}

// ListActive returns every active SKU, the catalog slice a planning run
// works from.
func (r *SKURepository) ListActive(ctx context.Context) ([]entity.SKU, error) {
	var skus []entity.SKU
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("code ASC").Find(&skus).Error
	return skus, err
}

// ========== BOM edges ==========

func (r *SKURepository) ListAllEdges(ctx context.Context) ([]entity.BOMEdge, error) {
	var edges []entity.BOMEdge
	err := r.db.WithContext(ctx).Find(&edges).Error
	return edges, err
}

func (r *SKURepository) ListComponents(ctx context.Context, parentID string) ([]entity.BOMEdge, error) {
	var edges []entity.BOMEdge
	err := r.db.WithContext(ctx).
		Preload("Component").
		Where("parent_sku_id = ?", parentID).
		Find(&edges).Error
	return edges, err
}

func (r *SKURepository) ListParents(ctx context.Context, componentID string) ([]entity.BOMEdge, error) {
	var edges []entity.BOMEdge
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Where("component_sku_id = ?", componentID).
		Find(&edges).Error
	return edges, err
}

// ReplaceComponents swaps a parent's component edges in one transaction,
// the same batch-save shape the BOM editor submits.
func (r *SKURepository) ReplaceComponents(ctx context.Context, parentID string, edges []entity.BOMEdge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_sku_id = ?", parentID).Delete(&entity.BOMEdge{}).Error; err != nil {
			return err
		}
		if len(edges) > 0 {
			if err := tx.Create(&edges).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
