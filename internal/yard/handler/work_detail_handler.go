package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type WorkDetailHandler struct {
	svc *service.WorkDetailService
}

func NewWorkDetailHandler(svc *service.WorkDetailService) *WorkDetailHandler {
	return &WorkDetailHandler{svc: svc}
}

// List work details
// GET /api/v1/work-details?work_order_id=&work_type=&work_scope=&q=
func (h *WorkDetailHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"work_order_id": c.Query("work_order_id"),
		"work_type":     c.Query("work_type"),
		"work_scope":    c.Query("work_scope"),
		"q":             c.Query("q"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, "list work details", err)
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: NewPagination(page, pageSize, total),
	})
}

func (h *WorkDetailHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get work detail", err)
		return
	}
	Success(c, detail)
}

func (h *WorkDetailHandler) Create(c *gin.Context) {
	var req service.CreateWorkDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	detail, err := h.svc.Create(c.Request.Context(), GetUserID(c), GetRole(c), &req)
	if err != nil {
		ServiceError(c, "create work detail", err)
		return
	}
	Created(c, detail)
}

func (h *WorkDetailHandler) Update(c *gin.Context) {
	var req service.WorkDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	detail, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetRole(c), &req)
	if err != nil {
		ServiceError(c, "update work detail", err)
		return
	}
	Success(c, detail)
}

func (h *WorkDetailHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), GetRole(c)); err != nil {
		ServiceError(c, "delete work detail", err)
		return
	}
	Success(c, nil)
}

// UploadWorkPermit stores the PTW document for a work detail.
// POST /api/v1/work-details/:id/work-permit (multipart, field "file")
func (h *WorkDetailHandler) UploadWorkPermit(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required: "+err.Error())
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "read upload failed: "+err.Error())
		return
	}
	defer src.Close()

	detail, err := h.svc.UploadWorkPermit(
		c.Request.Context(),
		c.Param("id"),
		GetRole(c),
		src,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		ServiceError(c, "upload work permit", err)
		return
	}
	Success(c, detail)
}

// WorkPermitURL returns a time-limited download link for the PTW document.
// GET /api/v1/work-details/:id/work-permit
func (h *WorkDetailHandler) WorkPermitURL(c *gin.Context) {
	url, err := h.svc.WorkPermitURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get work permit", err)
		return
	}
	Success(c, gin.H{"url": url})
}

// FieldAccess returns the acting role's capability per work detail field, so
// the frontend can render forms without duplicating the access table.
// GET /api/v1/work-details/field-access
func (h *WorkDetailHandler) FieldAccess(c *gin.Context) {
	role := GetRole(c)

	fields := make(map[string]string)
	for _, f := range entity.PlanningFields {
		fields[f] = entity.FieldAccess(role, f).String()
	}
	for _, f := range entity.ExecutionFields {
		fields[f] = entity.FieldAccess(role, f).String()
	}

	Success(c, gin.H{
		"role":   string(role),
		"fields": fields,
	})
}
