package pkg

import (
	"crypto/tls"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// ReferenceHeader carries the record a mail is about, e.g. a complaint
// reference, so replies can be matched in the inbox.
const ReferenceHeader = "X-Mala-Reference"

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ReplyTo  string
}

// Enabled reports whether outgoing mail is configured.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

// Mail one outgoing notification. Text is the plain part, HTML the
// alternative shown by capable clients.
type Mail struct {
	To        string
	Subject   string
	Text      string
	HTML      string
	Reference string
}

// NewMessage builds the gomail message for m.
func NewMessage(cfg SMTPConfig, m Mail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	if cfg.ReplyTo != "" {
		msg.SetHeader("Reply-To", cfg.ReplyTo)
	}
	if m.Reference != "" {
		msg.SetHeader(ReferenceHeader, m.Reference)
	}
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}
	return msg
}

func SendEmail(cfg SMTPConfig, m Mail) error {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d.DialAndSend(NewMessage(cfg, m))
}

// DonationThanksMail thanks a donor once the donation is acknowledged.
func DonationThanksMail(to, name, amount string) Mail {
	return Mail{
		To:      to,
		Subject: "Thank you for your donation",
		Text: fmt.Sprintf("Dear %s,\n\nWe have received your donation of %s. Thank you for supporting our work.\n",
			name, amount),
		HTML: fmt.Sprintf(`<p>Dear %s,</p><p>We have received your donation of <b>%s</b>. Thank you for supporting our work.</p>`,
			html.EscapeString(name), html.EscapeString(amount)),
	}
}

// ComplaintReceivedMail confirms a complaint and hands out its reference.
func ComplaintReceivedMail(to, name, reference, subject string) Mail {
	return Mail{
		To:        to,
		Subject:   "Complaint registered: " + reference,
		Reference: reference,
		Text: fmt.Sprintf("Dear %s,\n\nYour complaint %q has been registered.\nReference ID: %s\n\nPlease quote this reference in any follow-up.\n",
			name, subject, reference),
		HTML: fmt.Sprintf(`<p>Dear %s,</p><p>Your complaint <i>%s</i> has been registered.</p><p>Reference ID: <b style="font-size:18px;">%s</b></p><p>Please quote this reference in any follow-up.</p>`,
			html.EscapeString(name), html.EscapeString(subject), html.EscapeString(reference)),
	}
}
