package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	svc *service.ProgressService
}

func NewProgressHandler(svc *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// Add appends one progress report.
// POST /api/v1/work-details/:id/progress
func (h *ProgressHandler) Add(c *gin.Context) {
	var req service.AddProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	report, err := h.svc.Add(c.Request.Context(), GetUserID(c), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "add progress report", err)
		return
	}
	Created(c, report)
}

// List returns the full progress history, oldest first.
// GET /api/v1/work-details/:id/progress
func (h *ProgressHandler) List(c *gin.Context) {
	reports, err := h.svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "list progress reports", err)
		return
	}
	Success(c, gin.H{"items": reports})
}

// Summary returns the current progress of a work detail.
// GET /api/v1/work-details/:id/progress/summary
func (h *ProgressHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get progress summary", err)
		return
	}
	Success(c, summary)
}

// Delete removes one report.
// DELETE /api/v1/progress/:id
func (h *ProgressHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete progress report", err)
		return
	}
	Success(c, nil)
}
