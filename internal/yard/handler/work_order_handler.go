package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type WorkOrderHandler struct {
	svc *service.WorkOrderService
}

func NewWorkOrderHandler(svc *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{svc: svc}
}

// List work orders
// GET /api/v1/work-orders?vessel_id=&customer=
func (h *WorkOrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"vessel_id": c.Query("vessel_id"),
		"customer":  c.Query("customer"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, "list work orders", err)
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: NewPagination(page, pageSize, total),
	})
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	wo, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get work order", err)
		return
	}
	Success(c, wo)
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req service.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	wo, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		ServiceError(c, "create work order", err)
		return
	}
	Created(c, wo)
}

func (h *WorkOrderHandler) Update(c *gin.Context) {
	var req service.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	wo, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "update work order", err)
		return
	}
	Success(c, wo)
}

func (h *WorkOrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete work order", err)
		return
	}
	Success(c, nil)
}
