package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/planning"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
	"go.uber.org/zap"
)

// CatalogService manages SKUs and the BOM graph.
type CatalogService struct {
	skuRepo *repository.SKURepository
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewCatalogService(skuRepo *repository.SKURepository, rdb *redis.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{skuRepo: skuRepo, rdb: rdb, logger: logger}
}

type CreateSKURequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Kind    string `json:"kind" binding:"required"`
	Process string `json:"process"`
}

type UpdateSKURequest struct {
	Name    *string `json:"name"`
	Kind    *string `json:"kind"`
	Process *string `json:"process"`
	Active  *bool   `json:"active"`
}

type ComponentEdgeRequest struct {
	ComponentSKUID string  `json:"component_sku_id" binding:"required"`
	QtyPerUnit     float64 `json:"qty_per_unit" binding:"required"`
}

func validKind(kind string) bool {
	switch kind {
	case entity.SKUKindRaw, entity.SKUKindAssembly, entity.SKUKindCompleted:
		return true
	}
	return false
}

func (s *CatalogService) Create(ctx context.Context, userID string, req *CreateSKURequest) (*entity.SKU, error) {
	if !validKind(req.Kind) {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, req.Kind)
	}
	if _, err := s.skuRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: code %q already exists", ErrInvalidInput, req.Code)
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	sku := &entity.SKU{
		ID:        uuid.New().String()[:32],
		Code:      req.Code,
		Name:      req.Name,
		Kind:      req.Kind,
		Process:   req.Process,
		Active:    true,
		CreatedBy: userID,
	}
	if err := s.skuRepo.Create(ctx, sku); err != nil {
		return nil, fmt.Errorf("create sku: %w", err)
	}
	s.invalidateReport(ctx)
	return sku, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, req *UpdateSKURequest) (*entity.SKU, error) {
	sku, err := s.skuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sku.Name = *req.Name
	}
	if req.Kind != nil {
		if !validKind(*req.Kind) {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, *req.Kind)
		}
		sku.Kind = *req.Kind
	}
	if req.Process != nil {
		sku.Process = *req.Process
	}
	if req.Active != nil {
		sku.Active = *req.Active
	}

	if err := s.skuRepo.Update(ctx, sku); err != nil {
		return nil, fmt.Errorf("update sku: %w", err)
	}
	s.invalidateReport(ctx)
	return sku, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*entity.SKU, error) {
	return s.skuRepo.FindByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, kind string, activeOnly bool, page, pageSize int) ([]entity.SKU, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.skuRepo.List(ctx, kind, activeOnly, page, pageSize)
}

// Components returns a SKU's direct BOM lines.
func (s *CatalogService) Components(ctx context.Context, parentID string) ([]entity.BOMEdge, error) {
	if _, err := s.skuRepo.FindByID(ctx, parentID); err != nil {
		return nil, err
	}
	return s.skuRepo.ListComponents(ctx, parentID)
}

// ReplaceComponents rewrites a SKU's BOM lines. Raw materials cannot own
// components, quantities must be positive, and a SKU cannot contain
// itself.
func (s *CatalogService) ReplaceComponents(ctx context.Context, parentID string, lines []ComponentEdgeRequest) ([]entity.BOMEdge, error) {
	parent, err := s.skuRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.Kind == entity.SKUKindRaw {
		return nil, fmt.Errorf("%w: raw material %s cannot have components", ErrInvalidInput, parent.Code)
	}

	seen := make(map[string]bool, len(lines))
	edges := make([]entity.BOMEdge, 0, len(lines))
	for _, line := range lines {
		if line.QtyPerUnit <= 0 {
			return nil, fmt.Errorf("%w: qty_per_unit must be positive", ErrInvalidInput)
		}
		if line.ComponentSKUID == parentID {
			return nil, fmt.Errorf("%w: a SKU cannot contain itself", ErrInvalidInput)
		}
		if seen[line.ComponentSKUID] {
			return nil, fmt.Errorf("%w: duplicate component %s", ErrInvalidInput, line.ComponentSKUID)
		}
		seen[line.ComponentSKUID] = true

		if _, err := s.skuRepo.FindByID(ctx, line.ComponentSKUID); err != nil {
			if err == repository.ErrNotFound {
				return nil, fmt.Errorf("%w: component %s does not exist", ErrInvalidInput, line.ComponentSKUID)
			}
			return nil, err
		}

		edges = append(edges, entity.BOMEdge{
			ID:             uuid.New().String()[:32],
			ParentSKUID:    parentID,
			ComponentSKUID: line.ComponentSKUID,
			QtyPerUnit:     line.QtyPerUnit,
		})
	}

	if err := s.skuRepo.ReplaceComponents(ctx, parentID, edges); err != nil {
		return nil, fmt.Errorf("replace components: %w", err)
	}
	s.invalidateReport(ctx)
	return s.skuRepo.ListComponents(ctx, parentID)
}

// UsedIn walks the BOM upward and reports every SKU that directly or
// transitively consumes the component.
func (s *CatalogService) UsedIn(ctx context.Context, componentID string) ([]planning.UsageRef, bool, error) {
	if _, err := s.skuRepo.FindByID(ctx, componentID); err != nil {
		return nil, false, err
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, false, err
	}

	refs, truncated := catalog.UsedIn(componentID)
	if truncated {
		s.logger.Warn("usage traversal truncated",
			zap.String("component_id", componentID),
			zap.Int("max_depth", planning.MaxUsageDepth))
	}
	return refs, truncated, nil
}

// loadCatalog materializes the BOM graph for the planning package.
func (s *CatalogService) loadCatalog(ctx context.Context) (*planning.Catalog, error) {
	skus, err := s.skuRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load skus: %w", err)
	}
	edges, err := s.skuRepo.ListAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bom edges: %w", err)
	}
	return planning.NewCatalog(toPlanningSKUs(skus), toPlanningEdges(edges)), nil
}

func toPlanningSKUs(skus []entity.SKU) []planning.SKU {
	out := make([]planning.SKU, 0, len(skus))
	for _, sku := range skus {
		out = append(out, planning.SKU{
			ID:      sku.ID,
			Code:    sku.Code,
			Name:    sku.Name,
			Kind:    planning.SKUKind(sku.Kind),
			Process: sku.Process,
			Active:  sku.Active,
		})
	}
	return out
}

func toPlanningEdges(edges []entity.BOMEdge) []planning.Edge {
	out := make([]planning.Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, planning.Edge{
			ParentID:    e.ParentSKUID,
			ComponentID: e.ComponentSKUID,
			QtyPerUnit:  e.QtyPerUnit,
		})
	}
	return out
}

func (s *CatalogService) invalidateReport(ctx context.Context) {
	s.rdb.Del(ctx, reportCacheKey)
}
