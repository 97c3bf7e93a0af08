package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	svc *service.InvoiceService
}

func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// List invoices
// GET /api/v1/invoices?bastp_id=
func (h *InvoiceHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"bastp_id": c.Query("bastp_id"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, "list invoices", err)
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: NewPagination(page, pageSize, total),
	})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get invoice", err)
		return
	}
	Success(c, inv)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	inv, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		ServiceError(c, "create invoice", err)
		return
	}
	Created(c, inv)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	inv, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "update invoice", err)
		return
	}
	Success(c, inv)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete invoice", err)
		return
	}
	Success(c, nil)
}
