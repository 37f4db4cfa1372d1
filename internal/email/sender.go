// Package email delivers lead notifications to the office mailbox.
package email

import (
	"context"

	"merkaz_backend/platform/config"
)

// LeadEmail is the data rendered into a lead notification.
type LeadEmail struct {
	Source  string
	Locale  string
	Date    string
	Name    string
	Phone   string
	City    string
	Message string
	Link    string
}

type Sender interface {
	SendLeadEmail(ctx context.Context, toEmail string, lead LeadEmail) error
	SendCustomEmail(ctx context.Context, toEmail, subject, textContent string) error
}

type NoopSender struct{}

func (NoopSender) SendLeadEmail(ctx context.Context, toEmail string, lead LeadEmail) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, textContent string) error {
	return nil
}

// NewSender returns an SMTP sender, or NoopSender when the SMTP settings are
// incomplete.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.IsLeadEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(SMTPSettings{
		Host:        cfg.GetSMTPHost(),
		Port:        cfg.GetSMTPPort(),
		Username:    cfg.GetSMTPUsername(),
		Password:    cfg.GetSMTPPassword(),
		FromEmail:   cfg.GetSMTPFrom(),
		ImplicitTLS: cfg.IsSMTPImplicitTLS(),
	})
}
