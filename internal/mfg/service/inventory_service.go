package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
)

// InventoryService applies stock movements and keeps the audit trail.
type InventoryService struct {
	invRepo *repository.InventoryRepository
	skuRepo *repository.SKURepository
	rdb     *redis.Client
}

func NewInventoryService(invRepo *repository.InventoryRepository, skuRepo *repository.SKURepository, rdb *redis.Client) *InventoryService {
	return &InventoryService{invRepo: invRepo, skuRepo: skuRepo, rdb: rdb}
}

type StockMoveRequest struct {
	SKUID    string  `json:"sku_id" binding:"required"`
	State    string  `json:"state" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Notes    string  `json:"notes"`
}

type StockAdjustRequest struct {
	SKUID    string  `json:"sku_id" binding:"required"`
	State    string  `json:"state" binding:"required"`
	Quantity float64 `json:"quantity"` // absolute target quantity
	Notes    string  `json:"notes"`
}

func validState(state string) bool {
	switch state {
	case entity.InventoryStateCompleted, entity.InventoryStateInStock, entity.InventoryStateInProgress:
		return true
	}
	return false
}

func (s *InventoryService) List(ctx context.Context) ([]entity.InventoryRecord, error) {
	return s.invRepo.ListAll(ctx)
}

func (s *InventoryService) BySKU(ctx context.Context, skuID string) ([]entity.InventoryRecord, error) {
	if _, err := s.skuRepo.FindByID(ctx, skuID); err != nil {
		return nil, err
	}
	return s.invRepo.ListBySKU(ctx, skuID)
}

func (s *InventoryService) Transactions(ctx context.Context, skuID string, limit int) ([]entity.InventoryTransaction, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return s.invRepo.ListTransactions(ctx, skuID, limit)
}

func (s *InventoryService) StockIn(ctx context.Context, userID string, req *StockMoveRequest) (*entity.InventoryRecord, error) {
	if err := s.checkMove(ctx, req.SKUID, req.State, req.Quantity); err != nil {
		return nil, err
	}
	record, err := s.invRepo.Move(ctx, req.SKUID, req.State, entity.TxTypeIn, req.Quantity, req.Notes, userID)
	if err != nil {
		return nil, err
	}
	s.invalidateReport(ctx)
	return record, nil
}

func (s *InventoryService) StockOut(ctx context.Context, userID string, req *StockMoveRequest) (*entity.InventoryRecord, error) {
	if err := s.checkMove(ctx, req.SKUID, req.State, req.Quantity); err != nil {
		return nil, err
	}
	record, err := s.invRepo.Move(ctx, req.SKUID, req.State, entity.TxTypeOut, -req.Quantity, req.Notes, userID)
	if err != nil {
		return nil, err
	}
	s.invalidateReport(ctx)
	return record, nil
}

// Adjust sets the absolute on-hand quantity, recorded as a single delta
// movement.
func (s *InventoryService) Adjust(ctx context.Context, userID string, req *StockAdjustRequest) (*entity.InventoryRecord, error) {
	if !validState(req.State) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidInput, req.State)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if _, err := s.skuRepo.FindByID(ctx, req.SKUID); err != nil {
		return nil, err
	}

	var current float64
	records, err := s.invRepo.ListBySKU(ctx, req.SKUID)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.State == req.State {
			current = r.Quantity
			break
		}
	}

	record, err := s.invRepo.Move(ctx, req.SKUID, req.State, entity.TxTypeAdjust, req.Quantity-current, req.Notes, userID)
	if err != nil {
		return nil, err
	}
	s.invalidateReport(ctx)
	return record, nil
}

func (s *InventoryService) checkMove(ctx context.Context, skuID, state string, qty float64) error {
	if !validState(state) {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidInput, state)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if _, err := s.skuRepo.FindByID(ctx, skuID); err != nil {
		return err
	}
	return nil
}

func (s *InventoryService) invalidateReport(ctx context.Context) {
	s.rdb.Del(ctx, reportCacheKey)
}
