// Package service composes request messages and hands leads to the
// dispatcher.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"merkaz_backend/internal/composer"
	"merkaz_backend/internal/leads/dispatch"
	"merkaz_backend/internal/leads/domain"
	"merkaz_backend/internal/observability/metrics"
	"merkaz_backend/internal/whatsapp"
	"merkaz_backend/platform/apperr"
)

const (
	endpointLead    = "lead"
	endpointRequest = "request"
	unknownLocale   = "unknown"

	// DefaultSource tags leads whose caller did not name a source.
	DefaultSource = "site"
)

// LeadDispatcher delivers a record to the sinks and reports each outcome.
type LeadDispatcher interface {
	Dispatch(ctx context.Context, rec domain.Record) []dispatch.Outcome
}

// Preview is a composed message together with its deep link.
type Preview struct {
	Message   string
	Link      string
	Language  composer.Language
	Direction string
}

// RequestInput is a validated order form submission.
type RequestInput struct {
	Selection composer.Selection
	Language  composer.Language
	Source    string
	// Items is the raw item list as sent by the form, kept for the sheet.
	Items json.RawMessage
}

type Service struct {
	dispatcher LeadDispatcher
	linker     *whatsapp.Linker
	metrics    *metrics.LeadMetrics
	now        func() time.Time
}

func New(dispatcher LeadDispatcher, linker *whatsapp.Linker, m *metrics.LeadMetrics) *Service {
	return &Service{dispatcher: dispatcher, linker: linker, metrics: m, now: time.Now}
}

// Compose renders the live preview of a selection. Blank contact fields are
// allowed here.
func (s *Service) Compose(sel composer.Selection, lang composer.Language) Preview {
	message := composer.Compose(sel, lang)
	return Preview{
		Message:   message,
		Link:      s.linker.BuildDeepLink(message),
		Language:  lang,
		Direction: lang.Direction(),
	}
}

// SubmitLead dispatches a lead built by the client. Sink outcomes are
// returned for logging and tests only; the submission itself always succeeds.
func (s *Service) SubmitLead(ctx context.Context, rec domain.Record) []dispatch.Outcome {
	s.metrics.ObserveSubmission(endpointLead, localeLabel(rec.Locale))
	return s.dispatcher.Dispatch(ctx, rec)
}

// localeLabel bounds the metric label to the supported languages.
func localeLabel(locale string) string {
	if lang, ok := composer.ParseLanguage(locale); ok {
		return lang.String()
	}
	return unknownLocale
}

// SubmitRequest requires a name and a city, composes the message, dispatches
// the lead and returns the preview the browser redirects to. Sink failures
// do not fail the request.
func (s *Service) SubmitRequest(ctx context.Context, in RequestInput) (Preview, error) {
	var missing []string
	if strings.TrimSpace(in.Selection.Contact.Name) == "" {
		missing = append(missing, "contact.name")
	}
	if strings.TrimSpace(in.Selection.Contact.City) == "" {
		missing = append(missing, "contact.city")
	}
	if len(missing) > 0 {
		return Preview{}, apperr.Validation("name and city are required").WithDetails(missing)
	}

	preview := s.Compose(in.Selection, in.Language)

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = DefaultSource
	}
	rec := domain.Record{
		Source:    source,
		Locale:    in.Language.String(),
		CreatedAt: domain.FormatTimestamp(s.now()),
		Name:      in.Selection.Contact.Name,
		Phone:     in.Selection.Contact.Phone,
		City:      in.Selection.Contact.City,
		Message:   preview.Message,
		WaLink:    preview.Link,
		Details:   in.Selection.Contact.Details,
		Multi:     in.Selection.Mode == composer.ModeMulti,
		Items:     in.Items,
		ProductID: in.Selection.ProductID(),
	}

	s.metrics.ObserveSubmission(endpointRequest, rec.Locale)
	s.dispatcher.Dispatch(ctx, rec)
	return preview, nil
}
