package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/service"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// List GET /api/v1/skus
func (h *CatalogHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	kind := c.Query("kind")
	activeOnly := c.Query("active") == "true"

	skus, total, err := h.svc.List(c.Request.Context(), kind, activeOnly, page, pageSize)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{
		"items": skus,
		"total": total,
	})
}

// Get GET /api/v1/skus/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	sku, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, sku)
}

// Create POST /api/v1/skus
func (h *CatalogHandler) Create(c *gin.Context) {
	var req service.CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sku, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, sku)
}

// Update PUT /api/v1/skus/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	var req service.UpdateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sku, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, sku)
}

// Components GET /api/v1/skus/:id/components
func (h *CatalogHandler) Components(c *gin.Context) {
	edges, err := h.svc.Components(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": edges})
}

// ReplaceComponents PUT /api/v1/skus/:id/components
func (h *CatalogHandler) ReplaceComponents(c *gin.Context) {
	var req struct {
		Components []service.ComponentEdgeRequest `json:"components"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	edges, err := h.svc.ReplaceComponents(c.Request.Context(), c.Param("id"), req.Components)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": edges})
}

// UsedIn GET /api/v1/skus/:id/used-in
func (h *CatalogHandler) UsedIn(c *gin.Context) {
	refs, truncated, err := h.svc.UsedIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(refs))
	for _, ref := range refs {
		items = append(items, gin.H{
			"sku_id":       ref.SKUID,
			"code":         ref.Code,
			"name":         ref.Name,
			"kind":         ref.Kind,
			"depth":        ref.Depth,
			"qty_per_unit": ref.QtyPerUnit,
		})
	}
	Success(c, gin.H{
		"items":     items,
		"truncated": truncated,
	})
}
