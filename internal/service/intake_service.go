package service

import (
	"context"
	"slices"
	"strings"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/storage"

	"github.com/shopspring/decimal"
)

const (
	applicationPhotoFolder  = "membership/photos"
	complaintDocumentFolder = "complaints/documents"
)

// IntakeService handles unauthenticated submissions.
type IntakeService struct {
	donations    *database.DonationRepository
	applications *database.ApplicationRepository
	complaints   *database.ComplaintRepository
	media        *storage.Gateway
	*workflow
}

type DonationInput struct {
	DonorName     string
	DonorEmail    string
	PhoneNumber   string
	PresetAmount  decimal.Decimal
	CustomAmount  decimal.Decimal
	PaymentMethod string
	TransactionID string
	Notes         string
}

// SubmitDonation records a pending donation. A positive preset amount wins
// over the custom one.
func (s *IntakeService) SubmitDonation(ctx context.Context, in DonationInput) (*model.Donation, error) {
	if strings.TrimSpace(in.DonorName) == "" {
		return nil, pkg.NewValidationError("donor_name", "is required")
	}
	amount := in.CustomAmount
	if in.PresetAmount.IsPositive() {
		amount = in.PresetAmount
	}
	if !amount.IsPositive() {
		return nil, pkg.NewValidationError("amount", "must be greater than 0")
	}
	if !slices.Contains(model.PaymentMethods, in.PaymentMethod) {
		return nil, pkg.NewValidationError("payment_method", "must be one of %s", strings.Join(model.PaymentMethods, ", "))
	}
	if in.PhoneNumber != "" && !pkg.IsPhone(in.PhoneNumber) {
		return nil, pkg.NewValidationError("phone_number", "must be 10 digits")
	}
	d := &model.Donation{
		DonorName:     strings.TrimSpace(in.DonorName),
		DonorEmail:    in.DonorEmail,
		PhoneNumber:   in.PhoneNumber,
		Amount:        amount.Round(2),
		PaymentMethod: in.PaymentMethod,
		TransactionID: in.TransactionID,
		Notes:         in.Notes,
		Status:        model.DonationPending,
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("donation submitted", "id", d.ID, "payment_method", d.PaymentMethod)
	return d, nil
}

type ApplicationInput struct {
	FullName          string
	FatherHusbandName string
	Gender            string
	DateOfBirth       string
	Caste             string
	AadhaarNumber     string
	PhoneNumber       string
	EmailAddress      string
	State             string
	District          string
	Mandal            string
	Village           string
	FullAddress       string
	Photo             *storage.File
}

func (in ApplicationInput) validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return pkg.NewValidationError("full_name", "is required")
	}
	switch in.Gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return pkg.NewValidationError("gender", "must be male, female or other")
	}
	if in.Caste != "" && !pkg.IsLetters(in.Caste) {
		return pkg.NewValidationError("caste", "may contain letters and spaces only")
	}
	if !pkg.IsAadhaar(in.AadhaarNumber) {
		return pkg.NewValidationError("aadhaar_number", "must be 12 digits")
	}
	if !pkg.IsPhone(in.PhoneNumber) {
		return pkg.NewValidationError("phone_number", "must be 10 digits")
	}
	if in.Photo == nil {
		return pkg.NewValidationError("photo", "is required")
	}
	return nil
}

// ApplyMembership stores the photo and records a pending application.
func (s *IntakeService) ApplyMembership(ctx context.Context, in ApplicationInput) (*model.MemberApplication, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	dob, err := pkg.ParseDMY(in.DateOfBirth)
	if err != nil {
		return nil, pkg.NewValidationError("date_of_birth", "must be in dd-mm-yyyy format")
	}
	up, err := s.media.UploadPublic(ctx, *in.Photo, applicationPhotoFolder)
	if err != nil {
		return nil, err
	}
	app := &model.MemberApplication{
		FullName:          strings.TrimSpace(in.FullName),
		FatherHusbandName: in.FatherHusbandName,
		Gender:            in.Gender,
		DateOfBirth:       dob,
		Caste:             in.Caste,
		AadhaarNumber:     in.AadhaarNumber,
		PhoneNumber:       in.PhoneNumber,
		EmailAddress:      in.EmailAddress,
		State:             in.State,
		District:          in.District,
		Mandal:            in.Mandal,
		Village:           in.Village,
		FullAddress:       in.FullAddress,
		PhotoURL:          up.URL,
		Status:            model.MemberPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		s.media.Delete(ctx, up.URL)
		return nil, err
	}
	s.logger.Info("membership application received", "id", app.ID)
	return app, nil
}

type ComplaintInput struct {
	ComplainantName string
	Email           string
	Phone           string
	Address         string
	Type            string
	Subject         string
	Description     string
	Document        *storage.File
}

// FileComplaint records a pending complaint under a fresh reference id and
// mails the reference to the complainant.
func (s *IntakeService) FileComplaint(ctx context.Context, in ComplaintInput) (*model.Complaint, error) {
	if strings.TrimSpace(in.ComplainantName) == "" {
		return nil, pkg.NewValidationError("complainant_name", "is required")
	}
	if !pkg.IsPhone(in.Phone) {
		return nil, pkg.NewValidationError("phone", "must be 10 digits")
	}
	if !slices.Contains(model.ComplaintTypes, in.Type) {
		return nil, pkg.NewValidationError("type", "must be one of %s", strings.Join(model.ComplaintTypes, ", "))
	}
	if strings.TrimSpace(in.Subject) == "" {
		return nil, pkg.NewValidationError("subject", "is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, pkg.NewValidationError("description", "is required")
	}

	c := &model.Complaint{
		ComplainantName: strings.TrimSpace(in.ComplainantName),
		Email:           in.Email,
		Phone:           in.Phone,
		Address:         in.Address,
		Type:            in.Type,
		Subject:         strings.TrimSpace(in.Subject),
		Description:     in.Description,
		Status:          model.ComplaintPending,
	}
	if in.Document != nil {
		up, err := s.media.UploadPublic(ctx, *in.Document, complaintDocumentFolder, model.MediaImage, storage.MediaDocument)
		if err != nil {
			return nil, err
		}
		c.SupportingDocumentURL = up.URL
	}
	err := s.complaints.Create(ctx, c, func() (string, error) {
		return pkg.ComplaintReference(s.now())
	})
	if err != nil {
		s.media.Delete(ctx, c.SupportingDocumentURL)
		return nil, err
	}
	s.logger.Info("complaint filed", "id", c.ID, "reference_id", c.ReferenceID)
	s.notify("complaint_received", func() error { return s.notifier.ComplaintReceived(ctx, c) })
	return c, nil
}
