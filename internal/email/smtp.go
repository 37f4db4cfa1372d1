package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSettings holds the transport settings of an SMTPSender.
type SMTPSettings struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	// ImplicitTLS dials TLS directly (port 465) instead of upgrading with
	// STARTTLS.
	ImplicitTLS bool
}

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
type SMTPSender struct {
	settings SMTPSettings
	timeout  time.Duration
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(settings SMTPSettings) *SMTPSender {
	return &SMTPSender{settings: settings, timeout: 15 * time.Second}
}

func (s *SMTPSender) options() []gomail.Option {
	var opts []gomail.Option
	if s.settings.ImplicitTLS {
		opts = append(opts, gomail.WithSSLPort(false))
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSOpportunistic))
	}
	// The policy options pick a default port, so the configured one goes last.
	return append(opts,
		gomail.WithPort(s.settings.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.settings.Username),
		gomail.WithPassword(s.settings.Password),
		gomail.WithTimeout(s.timeout),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
}

func (s *SMTPSender) buildMessage(toEmail, subject, textContent string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.settings.FromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, textContent)
	return msg, nil
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, textContent string) error {
	msg, err := s.buildMessage(toEmail, subject, textContent)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.settings.Host, s.options()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendLeadEmail(ctx context.Context, toEmail string, lead LeadEmail) error {
	content, err := renderLeadText(lead)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, LeadSubject(lead.Source, lead.Locale), content)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, textContent string) error {
	return s.send(ctx, toEmail, subject, textContent)
}
