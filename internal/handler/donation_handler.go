package handler

import (
	"log/slog"
	"net/http"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	resource[model.Donation]
	svc *service.DonationService
}

func NewDonationHandler(svc *service.DonationService, logger *slog.Logger) *DonationHandler {
	return &DonationHandler{
		resource: resource[model.Donation]{family: database.DonationFamily, svc: svc, logger: logger},
		svc:      svc,
	}
}

func (h *DonationHandler) List(c *gin.Context)   { h.list(c) }
func (h *DonationHandler) Get(c *gin.Context)    { h.get(c) }
func (h *DonationHandler) Export(c *gin.Context) { h.export(c) }

func (h *DonationHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *DonationHandler) Verify(c *gin.Context) {
	runTransition(c, h.logger, "donation verified", "donation", h.svc.Verify)
}

func (h *DonationHandler) Acknowledge(c *gin.Context) {
	runTransition(c, h.logger, "donation acknowledged", "donation", h.svc.Acknowledge)
}

func (h *DonationHandler) Fail(c *gin.Context) {
	runTransition(c, h.logger, "donation marked as failed", "donation", h.svc.MarkFailed)
}
