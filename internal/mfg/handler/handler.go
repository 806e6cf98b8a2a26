package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/service"
)

// Handlers bundles every HTTP handler.
type Handlers struct {
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Inventory *InventoryHandler
	Forecast  *ForecastHandler
	Process   *ProcessHandler
	Schedule  *ScheduleHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc.Auth),
		Catalog:   NewCatalogHandler(svc.Catalog),
		Inventory: NewInventoryHandler(svc.Inventory),
		Forecast:  NewForecastHandler(svc.Forecast, svc.Export),
		Process:   NewProcessHandler(svc.Process),
		Schedule:  NewScheduleHandler(svc.Schedule),
	}
}

// Response is the common API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error maps an application code like 40400 to its HTTP status.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// RespondError translates service and repository errors to API responses.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, repository.ErrInsufficientStock):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID reads the authenticated user's ID off the request context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination reads page/page_size query params with sane bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 50

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 200 {
			pageSize = v
		}
	}

	return page, pageSize
}
