package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/service"
)

type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List GET /api/v1/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": records})
}

// BySKU GET /api/v1/inventory/:sku_id
func (h *InventoryHandler) BySKU(c *gin.Context) {
	records, err := h.svc.BySKU(c.Request.Context(), c.Param("sku_id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": records})
}

// Transactions GET /api/v1/inventory/:sku_id/transactions
func (h *InventoryHandler) Transactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	txs, err := h.svc.Transactions(c.Request.Context(), c.Param("sku_id"), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": txs})
}

// StockIn POST /api/v1/inventory/in
func (h *InventoryHandler) StockIn(c *gin.Context) {
	var req service.StockMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.svc.StockIn(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, record)
}

// StockOut POST /api/v1/inventory/out
func (h *InventoryHandler) StockOut(c *gin.Context) {
	var req service.StockMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.svc.StockOut(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, record)
}

// Adjust POST /api/v1/inventory/adjust
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req service.StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.svc.Adjust(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, record)
}
