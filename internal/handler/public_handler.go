package handler

import (
	"log/slog"
	"net/http"

	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PublicHandler the unauthenticated intake forms.
type PublicHandler struct {
	svc    *service.IntakeService
	logger *slog.Logger
}

type DonationReq struct {
	DonorName     string          `json:"donor_name" binding:"required"`
	DonorEmail    string          `json:"donor_email" binding:"omitempty,email"`
	PhoneNumber   string          `json:"phone_number" binding:"omitempty,phone10"`
	PresetAmount  decimal.Decimal `json:"preset_amount"`
	CustomAmount  decimal.Decimal `json:"custom_amount"`
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=bank_transfer upi cash cheque online_payment"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
}

type ApplicationReq struct {
	FullName          string `form:"full_name" binding:"required"`
	FatherHusbandName string `form:"father_husband_name" binding:"required"`
	Gender            string `form:"gender" binding:"required,oneof=male female other"`
	DateOfBirth       string `form:"date_of_birth" binding:"required,dmydate"`
	Caste             string `form:"caste" binding:"required,letters"`
	AadhaarNumber     string `form:"aadhaar_number" binding:"required,aadhaar"`
	PhoneNumber       string `form:"phone_number" binding:"required,phone10"`
	EmailAddress      string `form:"email_address" binding:"omitempty,email"`
	State             string `form:"state" binding:"required"`
	District          string `form:"district" binding:"required"`
	Mandal            string `form:"mandal" binding:"required"`
	Village           string `form:"village" binding:"required"`
	FullAddress       string `form:"full_address" binding:"required"`
}

type ComplaintReq struct {
	ComplainantName string `form:"complainant_name" binding:"required"`
	Email           string `form:"email" binding:"omitempty,email"`
	Phone           string `form:"phone" binding:"required,phone10"`
	Address         string `form:"address"`
	Type            string `form:"type" binding:"required"`
	Subject         string `form:"subject" binding:"required"`
	Description     string `form:"description" binding:"required"`
}

func NewPublicHandler(svc *service.IntakeService, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{svc: svc, logger: logger}
}

func (h *PublicHandler) SubmitDonation(c *gin.Context) {
	var req DonationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	d, err := h.svc.SubmitDonation(c.Request.Context(), service.DonationInput(req))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "donation submitted", "donation_id": d.ID, "donation": d})
}

func (h *PublicHandler) ApplyMembership(c *gin.Context) {
	var req ApplicationReq
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	app, err := h.svc.ApplyMembership(c.Request.Context(), service.ApplicationInput{
		FullName:          req.FullName,
		FatherHusbandName: req.FatherHusbandName,
		Gender:            req.Gender,
		DateOfBirth:       req.DateOfBirth,
		Caste:             req.Caste,
		AadhaarNumber:     req.AadhaarNumber,
		PhoneNumber:       req.PhoneNumber,
		EmailAddress:      req.EmailAddress,
		State:             req.State,
		District:          req.District,
		Mandal:            req.Mandal,
		Village:           req.Village,
		FullAddress:       req.FullAddress,
		Photo:             formFile(c, "photo"),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "application submitted", "application_id": app.ID})
}

func (h *PublicHandler) FileComplaint(c *gin.Context) {
	var req ComplaintReq
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	complaint, err := h.svc.FileComplaint(c.Request.Context(), service.ComplaintInput{
		ComplainantName: req.ComplainantName,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		Type:            req.Type,
		Subject:         req.Subject,
		Description:     req.Description,
		Document:        formFile(c, "supporting_document"),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg":          "complaint registered",
		"complaint_id": complaint.ID,
		"reference_id": complaint.ReferenceID,
	})
}
