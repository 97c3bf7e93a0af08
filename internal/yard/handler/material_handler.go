package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	svc *service.MaterialService
}

func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

// List materials
// GET /api/v1/materials?q=
func (h *MaterialHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"q": c.Query("q"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, "list materials", err)
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: NewPagination(page, pageSize, total),
	})
}

func (h *MaterialHandler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get material", err)
		return
	}
	Success(c, m)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	m, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, "create material", err)
		return
	}
	Created(c, m)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "update material", err)
		return
	}
	Success(c, m)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete material", err)
		return
	}
	Success(c, nil)
}

// AddUsage records material consumption against a work detail.
// POST /api/v1/work-details/:id/materials
func (h *MaterialHandler) AddUsage(c *gin.Context) {
	var req service.MaterialUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	u, err := h.svc.AddUsage(c.Request.Context(), GetUserID(c), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "add material usage", err)
		return
	}
	Created(c, u)
}

// ListUsage lists the material consumption of a work detail.
// GET /api/v1/work-details/:id/materials
func (h *MaterialHandler) ListUsage(c *gin.Context) {
	items, err := h.svc.ListUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "list material usage", err)
		return
	}
	Success(c, gin.H{"items": items})
}

// UpdateUsage edits one consumption record.
// PUT /api/v1/material-usages/:id
func (h *MaterialHandler) UpdateUsage(c *gin.Context) {
	var req service.MaterialUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	u, err := h.svc.UpdateUsage(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "update material usage", err)
		return
	}
	Success(c, u)
}

// DeleteUsage removes one consumption record.
// DELETE /api/v1/material-usages/:id
func (h *MaterialHandler) DeleteUsage(c *gin.Context) {
	if err := h.svc.DeleteUsage(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete material usage", err)
		return
	}
	Success(c, nil)
}
