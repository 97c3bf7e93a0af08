package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	svc *service.VerificationService
}

func NewVerificationHandler(svc *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// Verify marks a completed work detail as verified. Idempotent: verifying a
// second time returns the existing record.
// POST /api/v1/work-details/:id/verification
func (h *VerificationHandler) Verify(c *gin.Context) {
	var req service.VerifyWorkDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	v, err := h.svc.Verify(c.Request.Context(), GetUserID(c), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "verify work detail", err)
		return
	}
	Created(c, v)
}

// Get returns the verification record of a work detail.
// GET /api/v1/work-details/:id/verification
func (h *VerificationHandler) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get verification", err)
		return
	}
	Success(c, v)
}

// Revoke removes the verification of a work detail.
// DELETE /api/v1/work-details/:id/verification
func (h *VerificationHandler) Revoke(c *gin.Context) {
	if err := h.svc.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "revoke verification", err)
		return
	}
	Success(c, nil)
}
