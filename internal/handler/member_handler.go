package handler

import (
	"log/slog"
	"net/http"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	resource[model.Member]
	svc *service.MemberService
}

type CreateMemberReq struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"omitempty,phone10"`
	Email    string `json:"email" binding:"omitempty,email"`
	Aadhaar  string `json:"aadhaar" binding:"omitempty,aadhaar"`
	State    string `json:"state"`
	District string `json:"district"`
	Mandal   string `json:"mandal"`
	Status   string `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

func NewMemberHandler(svc *service.MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		resource: resource[model.Member]{family: database.MemberFamily, svc: svc, logger: logger},
		svc:      svc,
	}
}

func (h *MemberHandler) List(c *gin.Context)   { h.list(c) }
func (h *MemberHandler) Get(c *gin.Context)    { h.get(c) }
func (h *MemberHandler) Export(c *gin.Context) { h.export(c) }

func (h *MemberHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *MemberHandler) FilterOptions(c *gin.Context) {
	opts, err := h.svc.FilterOptions(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req CreateMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	m, err := h.svc.Create(c.Request.Context(), service.MemberInput(req))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MemberHandler) Approve(c *gin.Context) {
	runTransition(c, h.logger, "member approved", "member", h.svc.Approve)
}

func (h *MemberHandler) Reject(c *gin.Context) {
	runTransition(c, h.logger, "member rejected", "member", h.svc.Reject)
}
