package handler

import (
	"log/slog"
	"net/http"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	resource[model.MemberApplication]
	svc *service.ApplicationService
}

func NewApplicationHandler(svc *service.ApplicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		resource: resource[model.MemberApplication]{family: database.ApplicationFamily, svc: svc, logger: logger},
		svc:      svc,
	}
}

func (h *ApplicationHandler) List(c *gin.Context)   { h.list(c) }
func (h *ApplicationHandler) Get(c *gin.Context)    { h.get(c) }
func (h *ApplicationHandler) Export(c *gin.Context) { h.export(c) }

func (h *ApplicationHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Approve creates the member for the application.
func (h *ApplicationHandler) Approve(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	app, member, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":           "application approved",
		"application":   app,
		"member":        member,
		"membership_id": member.MembershipID,
	})
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	runTransition(c, h.logger, "application rejected", "application", h.svc.Reject)
}
