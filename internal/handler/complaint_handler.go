package handler

import (
	"log/slog"
	"net/http"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	resource[model.Complaint]
	svc *service.ComplaintService
}

type UpdateComplaintStatusReq struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

func NewComplaintHandler(svc *service.ComplaintService, logger *slog.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		resource: resource[model.Complaint]{family: database.ComplaintFamily, svc: svc, logger: logger},
		svc:      svc,
	}
}

func (h *ComplaintHandler) List(c *gin.Context)   { h.list(c) }
func (h *ComplaintHandler) Get(c *gin.Context)    { h.get(c) }
func (h *ComplaintHandler) Export(c *gin.Context) { h.export(c) }

func (h *ComplaintHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	var req UpdateComplaintStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	complaint, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status, req.AdminNotes)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "complaint status updated", "complaint": complaint})
}
