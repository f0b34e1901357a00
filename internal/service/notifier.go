package service

import (
	"context"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
)

// Notifier sends courtesy mails. Delivery is best effort.
type Notifier interface {
	DonationAcknowledged(ctx context.Context, d *model.Donation) error
	ComplaintReceived(ctx context.Context, c *model.Complaint) error
}

type NopNotifier struct{}

func (NopNotifier) DonationAcknowledged(context.Context, *model.Donation) error { return nil }
func (NopNotifier) ComplaintReceived(context.Context, *model.Complaint) error   { return nil }

// MailNotifier delivers over SMTP with gomail.
type MailNotifier struct {
	Config pkg.SMTPConfig
	Send   func(cfg pkg.SMTPConfig, m pkg.Mail) error
}

func NewMailNotifier(cfg pkg.SMTPConfig) *MailNotifier {
	return &MailNotifier{Config: cfg, Send: pkg.SendEmail}
}

func (n *MailNotifier) DonationAcknowledged(_ context.Context, d *model.Donation) error {
	if d.DonorEmail == "" {
		return nil
	}
	return n.Send(n.Config, pkg.DonationThanksMail(d.DonorEmail, d.DonorName, d.Amount.StringFixed(2)))
}

func (n *MailNotifier) ComplaintReceived(_ context.Context, c *model.Complaint) error {
	if c.Email == "" {
		return nil
	}
	return n.Send(n.Config, pkg.ComplaintReceivedMail(c.Email, c.ComplainantName, c.ReferenceID, c.Subject))
}
