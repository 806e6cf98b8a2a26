package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
)

// ScheduleService manages workers and their recurring weekly schedules.
type ScheduleService struct {
	workerRepo *repository.WorkerRepository
}

func NewScheduleService(workerRepo *repository.WorkerRepository) *ScheduleService {
	return &ScheduleService{workerRepo: workerRepo}
}

type CreateWorkerRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateWorkerRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

type CreateScheduleRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Recurring *bool  `json:"recurring"`
}

type UpdateScheduleRequest struct {
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Recurring *bool   `json:"recurring"`
	Active    *bool   `json:"active"`
}

func (s *ScheduleService) ListWorkers(ctx context.Context) ([]entity.Worker, error) {
	return s.workerRepo.List(ctx)
}

func (s *ScheduleService) GetWorker(ctx context.Context, id string) (*entity.Worker, error) {
	return s.workerRepo.FindByID(ctx, id)
}

func (s *ScheduleService) CreateWorker(ctx context.Context, req *CreateWorkerRequest) (*entity.Worker, error) {
	worker := &entity.Worker{
		ID:     uuid.New().String()[:32],
		Name:   req.Name,
		Active: true,
	}
	if err := s.workerRepo.Create(ctx, worker); err != nil {
		return nil, fmt.Errorf("create worker: %w", err)
	}
	return worker, nil
}

func (s *ScheduleService) UpdateWorker(ctx context.Context, id string, req *UpdateWorkerRequest) (*entity.Worker, error) {
	worker, err := s.workerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Active != nil {
		worker.Active = *req.Active
	}
	if err := s.workerRepo.Update(ctx, worker); err != nil {
		return nil, fmt.Errorf("update worker: %w", err)
	}
	return worker, nil
}

// checkWindow validates a schedule window: day in range, "15:04" clock
// strings, end strictly after start on the same day.
func checkWindow(day int, start, end string) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("%w: day_of_week %d out of range", ErrInvalidInput, day)
	}
	from, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("%w: bad start_time %q", ErrInvalidInput, start)
	}
	to, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("%w: bad end_time %q", ErrInvalidInput, end)
	}
	if !to.After(from) {
		return fmt.Errorf("%w: window %s-%s ends before it starts", ErrInvalidInput, start, end)
	}
	return nil
}

func (s *ScheduleService) CreateSchedule(ctx context.Context, workerID string, req *CreateScheduleRequest) (*entity.WorkerSchedule, error) {
	if _, err := s.workerRepo.FindByID(ctx, workerID); err != nil {
		return nil, err
	}
	if err := checkWindow(req.DayOfWeek, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	recurring := true
	if req.Recurring != nil {
		recurring = *req.Recurring
	}

	sched := &entity.WorkerSchedule{
		ID:        uuid.New().String()[:32],
		WorkerID:  workerID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Recurring: recurring,
		Active:    true,
	}
	if err := s.workerRepo.CreateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return sched, nil
}

func (s *ScheduleService) UpdateSchedule(ctx context.Context, id string, req *UpdateScheduleRequest) (*entity.WorkerSchedule, error) {
	sched, err := s.workerRepo.FindScheduleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		sched.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		sched.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		sched.EndTime = *req.EndTime
	}
	if req.Recurring != nil {
		sched.Recurring = *req.Recurring
	}
	if req.Active != nil {
		sched.Active = *req.Active
	}

	if err := checkWindow(sched.DayOfWeek, sched.StartTime, sched.EndTime); err != nil {
		return nil, err
	}

	if err := s.workerRepo.UpdateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	return sched, nil
}

func (s *ScheduleService) DeleteSchedule(ctx context.Context, id string) error {
	return s.workerRepo.DeleteSchedule(ctx, id)
}
