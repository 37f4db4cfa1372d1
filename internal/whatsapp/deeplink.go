// Package whatsapp builds wa.me deep links that open a chat with the office
// pre-filled with the composed request.
package whatsapp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"merkaz_backend/platform/config"
	"merkaz_backend/platform/phone"
)

const baseURL = "https://wa.me/"

// ErrNotDeepLink is returned by DecodeText for URLs that are not wa.me links.
var ErrNotDeepLink = errors.New("not a wa.me deep link")

// Linker builds deep links to a fixed destination number.
type Linker struct {
	destination string
}

// NewLinker normalizes the configured phone number to the digits-only form
// wa.me expects.
func NewLinker(cfg config.WhatsAppConfig) (*Linker, error) {
	return NewLinkerForPhone(cfg.GetWhatsAppPhone())
}

// NewLinkerForPhone is NewLinker without a config value.
func NewLinkerForPhone(number string) (*Linker, error) {
	digits := phone.Digits(number)
	if digits == "" {
		return nil, fmt.Errorf("whatsapp destination %q has no digits", number)
	}
	return &Linker{destination: digits}, nil
}

// Destination returns the digits-only destination token.
func (l *Linker) Destination() string {
	return l.destination
}

// BuildDeepLink returns https://wa.me/<destination>?text=<message>, with the
// message encoded the way browsers' encodeURIComponent does it.
func (l *Linker) BuildDeepLink(message string) string {
	return baseURL + l.destination + "?text=" + EncodeComponent(message)
}

// EncodeComponent percent-encodes s as UTF-8, leaving only the characters
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) unescaped. Spaces become %20.
func EncodeComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentReplacer.Replace(escaped)
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// DecodeText extracts the pre-filled message from a deep link.
func DecodeText(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse deep link: %w", err)
	}
	if u.Scheme != "https" || u.Host != "wa.me" {
		return "", ErrNotDeepLink
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", fmt.Errorf("parse deep link query: %w", err)
	}
	return values.Get("text"), nil
}
