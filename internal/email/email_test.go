package email

import (
	"bytes"
	"context"
	"strings"
	"testing"

	gomail "github.com/wneessen/go-mail"
)

func TestLeadSubjectFallbacks(t *testing.T) {
	cases := []struct {
		source, locale, want string
	}{
		{"site-form", "he", "Nouveau lead - site-form (he)"},
		{"", "fr", "Nouveau lead - site (fr)"},
		{"", "", "Nouveau lead - site (?)"},
	}
	for _, tc := range cases {
		if got := LeadSubject(tc.source, tc.locale); got != tc.want {
			t.Fatalf("LeadSubject(%q, %q) = %q, want %q", tc.source, tc.locale, got, tc.want)
		}
	}
}

func TestRenderLeadText(t *testing.T) {
	got, err := renderLeadText(LeadEmail{
		Date:    "2026-10-16T09:30:00.000Z",
		Name:    "David",
		Phone:   "+33612345678",
		City:    "Jérusalem",
		Message: "Bonjour\n\n• Ville : Jérusalem",
		Link:    "https://wa.me/972585360510?text=Bonjour",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Date: 2026-10-16T09:30:00.000Z\n" +
		"Nom: David\n" +
		"Téléphone: +33612345678\n" +
		"Ville: Jérusalem\n\n" +
		"Message WhatsApp:\nBonjour\n\n• Ville : Jérusalem\n\n" +
		"Lien WhatsApp:\nhttps://wa.me/972585360510?text=Bonjour\n"
	if got != want {
		t.Fatalf("unexpected body:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderLeadTextKeepsBlankFields(t *testing.T) {
	got, err := renderLeadText(LeadEmail{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(got, "Date: \nNom: \nTéléphone: \nVille: \n\n") {
		t.Fatalf("expected empty values, got %q", got)
	}
	if strings.Contains(got, "<no value>") {
		t.Fatalf("template leaked a missing value: %q", got)
	}
}

func TestSMTPSenderBuildsPlainTextMessage(t *testing.T) {
	sender := NewSMTPSender(SMTPSettings{
		Host:      "smtp.example.com",
		Port:      587,
		Username:  "leads@example.com",
		Password:  "secret",
		FromEmail: "leads@example.com",
	})

	msg, err := sender.buildMessage("office@example.com", LeadSubject("site", "fr"), "Nom: David\n")
	if err != nil {
		t.Fatalf("buildMessage: %v", err)
	}
	if subject := msg.GetGenHeader(gomail.HeaderSubject); len(subject) != 1 || subject[0] != "Nouveau lead - site (fr)" {
		t.Fatalf("unexpected subject header %v", subject)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	if !strings.Contains(buf.String(), "text/plain") {
		t.Fatalf("expected a text/plain body, got:\n%s", buf.String())
	}

	if _, err := sender.buildMessage("not an address", "s", "b"); err == nil {
		t.Fatalf("expected invalid recipient to fail")
	}
}

func TestNewSenderIsNoopWhenDisabled(t *testing.T) {
	sender := NewSender(stubSMTPConfig{})
	if _, ok := sender.(NoopSender); !ok {
		t.Fatalf("expected NoopSender, got %T", sender)
	}
	if err := sender.SendLeadEmail(context.Background(), "office@example.com", LeadEmail{}); err != nil {
		t.Fatalf("noop send returned error: %v", err)
	}

	sender = NewSender(stubSMTPConfig{enabled: true, port: 465})
	smtp, ok := sender.(*SMTPSender)
	if !ok {
		t.Fatalf("expected *SMTPSender, got %T", sender)
	}
	if !smtp.settings.ImplicitTLS {
		t.Fatalf("expected implicit TLS for port 465")
	}
}

type stubSMTPConfig struct {
	enabled bool
	port    int
}

func (s stubSMTPConfig) GetSMTPHost() string      { return "smtp.example.com" }
func (s stubSMTPConfig) GetSMTPPort() int         { return s.port }
func (s stubSMTPConfig) GetSMTPUsername() string  { return "leads@example.com" }
func (s stubSMTPConfig) GetSMTPPassword() string  { return "secret" }
func (s stubSMTPConfig) GetSMTPFrom() string      { return "leads@example.com" }
func (s stubSMTPConfig) GetLeadEmailTo() string   { return "office@example.com" }
func (s stubSMTPConfig) IsSMTPImplicitTLS() bool  { return s.port == 465 }
func (s stubSMTPConfig) IsLeadEmailEnabled() bool { return s.enabled }
