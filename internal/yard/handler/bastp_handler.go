package handler

import (
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-gonic/gin"
)

type BASTPHandler struct {
	svc *service.BASTPService
}

func NewBASTPHandler(svc *service.BASTPService) *BASTPHandler {
	return &BASTPHandler{svc: svc}
}

// List BASTPs. Every fetch reconciles statuses first, so the payload always
// reflects the currently satisfied transition conditions.
// GET /api/v1/bastp?vessel_id=&status=
func (h *BASTPHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"vessel_id": c.Query("vessel_id"),
		"status":    c.Query("status"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, "list BASTP", err)
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: NewPagination(page, pageSize, total),
	})
}

func (h *BASTPHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get BASTP", err)
		return
	}
	Success(c, b)
}

func (h *BASTPHandler) Create(c *gin.Context) {
	var req service.CreateBASTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	b, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		ServiceError(c, "create BASTP", err)
		return
	}
	Created(c, b)
}

func (h *BASTPHandler) Update(c *gin.Context) {
	var req service.UpdateBASTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "update BASTP", err)
		return
	}
	Success(c, b)
}

func (h *BASTPHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete BASTP", err)
		return
	}
	Success(c, nil)
}

type linkWorkDetailRequest struct {
	WorkDetailID string `json:"work_detail_id" binding:"required"`
}

// LinkWorkDetail attaches a completed work detail to a draft BASTP.
// POST /api/v1/bastp/:id/work-details
func (h *BASTPHandler) LinkWorkDetail(c *gin.Context) {
	var req linkWorkDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	link, err := h.svc.LinkWorkDetail(c.Request.Context(), c.Param("id"), req.WorkDetailID)
	if err != nil {
		ServiceError(c, "link work detail", err)
		return
	}
	Created(c, link)
}

// UnlinkWorkDetail detaches a work detail from a draft BASTP.
// DELETE /api/v1/bastp/:id/work-details/:workDetailId
func (h *BASTPHandler) UnlinkWorkDetail(c *gin.Context) {
	err := h.svc.UnlinkWorkDetail(c.Request.Context(), c.Param("id"), c.Param("workDetailId"))
	if err != nil {
		ServiceError(c, "unlink work detail", err)
		return
	}
	Success(c, nil)
}

// UploadSignedDocument stores the signed handover PDF.
// POST /api/v1/bastp/:id/signed-document (multipart, field "file")
func (h *BASTPHandler) UploadSignedDocument(c *gin.Context) {
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

	b, err := h.svc.UploadSignedDocument(
		c.Request.Context(),
		c.Param("id"),
		src,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		ServiceError(c, "upload signed document", err)
		return
	}
	Success(c, b)
}

// SignedDocumentURL returns a time-limited download link.
// GET /api/v1/bastp/:id/signed-document
func (h *BASTPHandler) SignedDocumentURL(c *gin.Context) {
	url, err := h.svc.SignedDocumentURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "get signed document", err)
		return
	}
	Success(c, gin.H{"url": url})
}

// AddGeneralService adds a per-day service line.
// POST /api/v1/bastp/:id/general-services
func (h *BASTPHandler) AddGeneralService(c *gin.Context) {
	var req service.GeneralServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	g, err := h.svc.AddGeneralService(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "add general service", err)
		return
	}
	Created(c, g)
}

// UpdateGeneralService edits a service line.
// PUT /api/v1/general-services/:id
func (h *BASTPHandler) UpdateGeneralService(c *gin.Context) {
	var req service.GeneralServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	g, err := h.svc.UpdateGeneralService(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		ServiceError(c, "update general service", err)
		return
	}
	Success(c, g)
}

// DeleteGeneralService removes a service line.
// DELETE /api/v1/general-services/:id
func (h *BASTPHandler) DeleteGeneralService(c *gin.Context) {
	if err := h.svc.DeleteGeneralService(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "delete general service", err)
		return
	}
	Success(c, nil)
}
