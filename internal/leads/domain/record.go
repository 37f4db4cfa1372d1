// Package domain holds the lead snapshot handed to the sinks.
package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"merkaz_backend/platform/apperr"
)

// MsgInvalidPayload is returned for bodies that are not a JSON object.
const MsgInvalidPayload = "Invalid payload"

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Record is a one-shot snapshot of a submitted request plus the composed
// message. It has no identity and is never stored.
type Record struct {
	Source    string          `json:"source,omitempty"`
	Locale    string          `json:"locale,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
	Name      string          `json:"name,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	City      string          `json:"city,omitempty"`
	Message   string          `json:"message,omitempty"`
	WaLink    string          `json:"waLink,omitempty"`
	Details   string          `json:"details,omitempty"`
	Multi     bool            `json:"multi,omitempty"`
	Items     json.RawMessage `json:"items,omitempty"`
	ProductID string          `json:"productId,omitempty"`
}

// ParseRecord decodes a lead submission body. Only bodies that are not a
// JSON object are rejected; field types are coerced the way the site's
// JavaScript would read them.
func ParseRecord(body []byte) (Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, apperr.BadRequest(MsgInvalidPayload)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Record{}, apperr.Wrap(apperr.KindBadRequest, MsgInvalidPayload, err)
	}

	rec := Record{
		Source:    looseString(fields["source"]),
		Locale:    looseString(fields["locale"]),
		CreatedAt: looseString(fields["createdAt"]),
		Name:      looseString(fields["name"]),
		Phone:     looseString(fields["phone"]),
		City:      looseString(fields["city"]),
		Message:   looseString(fields["message"]),
		WaLink:    looseString(fields["waLink"]),
		Details:   looseString(fields["details"]),
		Multi:     truthy(fields["multi"]),
		Items:     fields["items"],
		ProductID: looseString(fields["productId"]),
	}
	if rec.hasNullItems() {
		rec.Items = nil
	}
	return rec, nil
}

// looseString reads a JSON value as text: strings as-is, null as empty and
// anything else as its compact JSON text.
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// truthy follows JavaScript truthiness: false, 0, "" and null are false.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 'n', 'f':
		return false
	case 't', '{', '[':
		return true
	case '"':
		return looseString(raw) != ""
	default:
		n, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && n != 0
	}
}

func (r Record) hasNullItems() bool {
	return len(r.Items) == 0 || bytes.Equal(bytes.TrimSpace(r.Items), []byte("null"))
}

// Timestamp returns CreatedAt, or now formatted like a browser
// Date.toISOString when it is empty.
func (r Record) Timestamp(now time.Time) string {
	if r.CreatedAt != "" {
		return r.CreatedAt
	}
	return FormatTimestamp(now)
}

// FormatTimestamp formats t in UTC with millisecond precision, e.g.
// 2026-10-16T09:30:00.000Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ItemsJSON is the compact JSON of the raw item list, or "null".
func (r Record) ItemsJSON() string {
	if r.hasNullItems() {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, r.Items); err != nil {
		return "null"
	}
	return buf.String()
}
