package dispatch

import (
	"context"
	"fmt"
	"time"

	"merkaz_backend/internal/email"
	"merkaz_backend/internal/leads/domain"
	"merkaz_backend/internal/sheets"
)

const (
	SinkEmail = "email"
	SinkSheet = "sheet"
)

// EmailSink mails each lead to the office mailbox.
type EmailSink struct {
	sender email.Sender
	to     string
	now    func() time.Time
}

func NewEmailSink(sender email.Sender, to string) *EmailSink {
	return &EmailSink{sender: sender, to: to, now: time.Now}
}

func (s *EmailSink) Name() string { return SinkEmail }

func (s *EmailSink) Deliver(ctx context.Context, rec domain.Record) error {
	err := s.sender.SendLeadEmail(ctx, s.to, email.LeadEmail{
		Source:  rec.Source,
		Locale:  rec.Locale,
		Date:    rec.Timestamp(s.now()),
		Name:    rec.Name,
		Phone:   rec.Phone,
		City:    rec.City,
		Message: rec.Message,
		Link:    rec.WaLink,
	})
	if err != nil {
		return fmt.Errorf("email sink: %w", err)
	}
	return nil
}

// SheetSink appends each lead as a spreadsheet row.
type SheetSink struct {
	appender sheets.Appender
	now      func() time.Time
}

func NewSheetSink(appender sheets.Appender) *SheetSink {
	return &SheetSink{appender: appender, now: time.Now}
}

func (s *SheetSink) Name() string { return SinkSheet }

func (s *SheetSink) Deliver(ctx context.Context, rec domain.Record) error {
	if err := s.appender.AppendRow(ctx, SheetRow(rec, s.now())); err != nil {
		return fmt.Errorf("sheet sink: %w", err)
	}
	return nil
}

// SheetRow lays a record out in the spreadsheet column order: date, source,
// locale, name, phone, city, multi, product id, items JSON, details, message,
// link.
func SheetRow(rec domain.Record, now time.Time) []any {
	multi := "no"
	if rec.Multi {
		multi = "yes"
	}
	return []any{
		rec.Timestamp(now),
		rec.Source,
		rec.Locale,
		rec.Name,
		rec.Phone,
		rec.City,
		multi,
		rec.ProductID,
		rec.ItemsJSON(),
		rec.Details,
		rec.Message,
		rec.WaLink,
	}
}
