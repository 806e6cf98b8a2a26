package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
)

// ProcessService manages labor-process rates.
type ProcessService struct {
	processRepo *repository.ProcessRepository
	rdb         *redis.Client
}

func NewProcessService(processRepo *repository.ProcessRepository, rdb *redis.Client) *ProcessService {
	return &ProcessService{processRepo: processRepo, rdb: rdb}
}

type CreateProcessRequest struct {
	Name           string  `json:"name" binding:"required"`
	SecondsPerUnit float64 `json:"seconds_per_unit" binding:"required"`
}

type UpdateProcessRequest struct {
	SecondsPerUnit *float64 `json:"seconds_per_unit"`
	Active         *bool    `json:"active"`
}

func (s *ProcessService) List(ctx context.Context) ([]entity.ProcessConfig, error) {
	return s.processRepo.List(ctx)
}

func (s *ProcessService) Get(ctx context.Context, id string) (*entity.ProcessConfig, error) {
	return s.processRepo.FindByID(ctx, id)
}

func (s *ProcessService) Create(ctx context.Context, req *CreateProcessRequest) (*entity.ProcessConfig, error) {
	if req.SecondsPerUnit <= 0 {
		return nil, fmt.Errorf("%w: seconds_per_unit must be positive", ErrInvalidInput)
	}
	if _, err := s.processRepo.FindByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("%w: process %q already exists", ErrInvalidInput, req.Name)
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	p := &entity.ProcessConfig{
		ID:             uuid.New().String()[:32],
		Name:           req.Name,
		SecondsPerUnit: req.SecondsPerUnit,
		Active:         true,
	}
	if err := s.processRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create process: %w", err)
	}
	s.invalidateReport(ctx)
	return p, nil
}

func (s *ProcessService) Update(ctx context.Context, id string, req *UpdateProcessRequest) (*entity.ProcessConfig, error) {
	p, err := s.processRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SecondsPerUnit != nil {
		if *req.SecondsPerUnit <= 0 {
			return nil, fmt.Errorf("%w: seconds_per_unit must be positive", ErrInvalidInput)
		}
		p.SecondsPerUnit = *req.SecondsPerUnit
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.processRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update process: %w", err)
	}
	s.invalidateReport(ctx)
	return p, nil
}

func (s *ProcessService) invalidateReport(ctx context.Context) {
	s.rdb.Del(ctx, reportCacheKey)
}
