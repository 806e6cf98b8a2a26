package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/service"
)

type ScheduleHandler struct {
	svc *service.ScheduleService
}

func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// ListWorkers GET /api/v1/workers
func (h *ScheduleHandler) ListWorkers(c *gin.Context) {
	workers, err := h.svc.ListWorkers(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": workers})
}

// GetWorker GET /api/v1/workers/:id
func (h *ScheduleHandler) GetWorker(c *gin.Context) {
	worker, err := h.svc.GetWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, worker)
}

// CreateWorker POST /api/v1/workers
func (h *ScheduleHandler) CreateWorker(c *gin.Context) {
	var req service.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	worker, err := h.svc.CreateWorker(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, worker)
}

// UpdateWorker PUT /api/v1/workers/:id
func (h *ScheduleHandler) UpdateWorker(c *gin.Context) {
	var req service.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	worker, err := h.svc.UpdateWorker(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, worker)
}

// CreateSchedule POST /api/v1/workers/:id/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req service.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sched, err := h.svc.CreateSchedule(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, sched)
}

// UpdateSchedule PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sched, err := h.svc.UpdateSchedule(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, sched)
}

// DeleteSchedule DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	if err := h.svc.DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
