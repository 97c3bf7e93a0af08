package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type ReferenceHandler struct {
	svc *service.ReferenceService
}

func NewReferenceHandler(svc *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{svc: svc}
}

// ListServiceTypes returns all service types, cached.
// GET /api/v1/service-types
func (h *ReferenceHandler) ListServiceTypes(c *gin.Context) {
	items, err := h.svc.ListServiceTypes(c.Request.Context())
	if err != nil {
		ServiceError(c, "list service types", err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ReferenceHandler) CreateServiceType(c *gin.Context) {
	var req service.ServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	st, err := h.svc.CreateServiceType(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, "create service type", err)
		return
	}
	Created(c, st)
}

func (h *ReferenceHandler) UpdateServiceType(c *gin.Context) {
	var req service.ServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	st, err := h.svc.UpdateServiceType(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "update service type", err)
		return
	}
	Success(c, st)
}

func (h *ReferenceHandler) DeleteServiceType(c *gin.Context) {
	if err := h.svc.DeleteServiceType(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete service type", err)
		return
	}
	Success(c, nil)
}
