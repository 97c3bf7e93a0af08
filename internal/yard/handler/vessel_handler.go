package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type VesselHandler struct {
	svc *service.VesselService
}

func NewVesselHandler(svc *service.VesselService) *VesselHandler {
	return &VesselHandler{svc: svc}
}

// List vessels
// GET /api/v1/vessels?q=&type=
func (h *VesselHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"q":    c.Query("q"),
		"type": c.Query("type"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, "list vessels", err)
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: NewPagination(page, pageSize, total),
	})
}

func (h *VesselHandler) Get(c *gin.Context) {
	vessel, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get vessel", err)
		return
	}
	Success(c, vessel)
}

func (h *VesselHandler) Create(c *gin.Context) {
	var req service.VesselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vessel, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, "create vessel", err)
		return
	}
	Created(c, vessel)
}

func (h *VesselHandler) Update(c *gin.Context) {
	var req service.VesselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vessel, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "update vessel", err)
		return
	}
	Success(c, vessel)
}

func (h *VesselHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete vessel", err)
		return
	}
	Success(c, nil)
}
