package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/service"
)

type ForecastHandler struct {
	svc       *service.ForecastService
	exportSvc *service.ExportService
}

func NewForecastHandler(svc *service.ForecastService, exportSvc *service.ExportService) *ForecastHandler {
	return &ForecastHandler{svc: svc, exportSvc: exportSvc}
}

// List GET /api/v1/forecasts
func (h *ForecastHandler) List(c *gin.Context) {
	forecasts, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": forecasts})
}

// Upsert PUT /api/v1/forecasts
func (h *ForecastHandler) Upsert(c *gin.Context) {
	var req service.UpsertForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	forecast, err := h.svc.Upsert(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, forecast)
}

// Delete DELETE /api/v1/forecasts/:sku_id
func (h *ForecastHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("sku_id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}

// parseWindow reads optional start/end date params (YYYY-MM-DD).
func parseWindow(c *gin.Context) (start, end time.Time, err error) {
	if s := c.Query("start"); s != "" {
		start, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return start, end, fmt.Errorf("bad start date %q", s)
		}
	}
	if e := c.Query("end"); e != "" {
		end, err = time.Parse(time.DateOnly, e)
		if err != nil {
			return start, end, fmt.Errorf("bad end date %q", e)
		}
	}
	return start, end, nil
}

// Run POST /api/v1/forecasts/run
func (h *ForecastHandler) Run(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	report, err := h.svc.Run(c.Request.Context(), start, end)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, report)
}

// Report GET /api/v1/forecasts/report
func (h *ForecastHandler) Report(c *gin.Context) {
	report, err := h.svc.Report(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, report)
}

// Export GET /api/v1/forecasts/report/export
func (h *ForecastHandler) Export(c *gin.Context) {
	f, err := h.exportSvc.ReportWorkbook(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("forecast-report-%s.xlsx", time.Now().Format(time.DateOnly))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write workbook: "+err.Error())
	}
}

// LaborCapacity GET /api/v1/labor/capacity
func (h *ForecastHandler) LaborCapacity(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if start.IsZero() || end.IsZero() {
		BadRequest(c, "start and end dates are required")
		return
	}

	labor, err := h.svc.LaborCapacity(c.Request.Context(), start, end)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, labor)
}
