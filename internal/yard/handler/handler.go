package handler

import (
	"errors"
	"strconv"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

// Handlers is the handler collection wired into the router.
type Handlers struct {
	Vessel       *VesselHandler
	WorkOrder    *WorkOrderHandler
	WorkDetail   *WorkDetailHandler
	Progress     *ProgressHandler
	BASTP        *BASTPHandler
	Invoice      *InvoiceHandler
	Verification *VerificationHandler
	Material     *MaterialHandler
	Reference    *ReferenceHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Vessel:       NewVesselHandler(svc.Vessel),
		WorkOrder:    NewWorkOrderHandler(svc.WorkOrder),
		WorkDetail:   NewWorkDetailHandler(svc.WorkDetail),
		Progress:     NewProgressHandler(svc.Progress),
		BASTP:        NewBASTPHandler(svc.BASTP),
		Invoice:      NewInvoiceHandler(svc.Invoice),
		Verification: NewVerificationHandler(svc.Verification),
		Material:     NewMaterialHandler(svc.Material),
		Reference:    NewReferenceHandler(svc.Reference),
	}
}

// Response is the common API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps a paginated list.
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) *Pagination {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      int(total),
		TotalPages: totalPages,
	}
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

// Error writes the envelope; the HTTP status is the leading digits of code.
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

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// ServiceError maps service-layer failures onto the envelope. Validation and
// state-rule failures are 400, role denials 403, missing records 404,
// everything else 500 prefixed with the failed action.
func ServiceError(c *gin.Context, action string, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		BadRequest(c, vErr.Error())
	case errors.Is(err, service.ErrForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotPDF), errors.Is(err, service.ErrDocumentTooBig):
		BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, action+": record not found")
	default:
		InternalError(c, action+" failed: "+err.Error())
	}
}

// GetUserID reads the authenticated user id set by the JWT middleware.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetRole reads the acting yard role set by the JWT middleware.
func GetRole(c *gin.Context) entity.Role {
	return entity.ParseRole(c.GetString("role"))
}

// GetPagination reads page/page_size query params with sane bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
