package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc    *service.DashboardService
	logger *slog.Logger
}

func NewDashboardHandler(svc *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *DashboardHandler) MonthlyTrends(c *gin.Context) {
	months := service.DefaultTrendMonths
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > service.MaxTrendMonths {
			writeError(c, h.logger, pkg.NewValidationError("months", "must be an integer between 1 and %d", service.MaxTrendMonths))
			return
		}
		months = n
	}
	trends, err := h.svc.MonthlyTrends(c.Request.Context(), months)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": months, "trends": trends})
}

func (h *DashboardHandler) DistrictDistribution(c *gin.Context) {
	dist, err := h.svc.DistrictDistribution(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"districts": dist})
}
