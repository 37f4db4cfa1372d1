// Package sheets appends lead rows to a Google spreadsheet with a service
// account.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"merkaz_backend/platform/config"
)

const (
	tokenURL = "https://oauth2.googleapis.com/token"
	// valueInputRaw stores values exactly as sent, without formula parsing.
	valueInputRaw = "RAW"
)

// Appender adds one row at the end of the configured range.
type Appender interface {
	AppendRow(ctx context.Context, row []any) error
}

// Client is an Appender backed by the Sheets v4 API.
type Client struct {
	service       *gsheets.Service
	spreadsheetID string
	appendRange   string
}

// NewClient authenticates with the service account from cfg. The token source
// lives for the whole process, so ctx should not be request scoped.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	if !cfg.IsLeadSheetEnabled() {
		return nil, errors.New("sheets: spreadsheet id and service account are required")
	}

	jwtConfig := &jwt.Config{
		Email:      cfg.GetServiceAccountEmail(),
		PrivateKey: []byte(cfg.GetServiceAccountPrivateKey()),
		Scopes:     []string{gsheets.SpreadsheetsScope},
		TokenURL:   tokenURL,
	}

	return NewClientWithOptions(ctx, cfg.GetSheetsID(), cfg.GetSheetsRange(),
		option.WithHTTPClient(jwtConfig.Client(ctx)))
}

// NewClientWithOptions builds a Client from raw API client options.
func NewClientWithOptions(ctx context.Context, spreadsheetID, appendRange string, opts ...option.ClientOption) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}
	if strings.TrimSpace(appendRange) == "" {
		appendRange = "A1"
	}

	service, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		appendRange:   appendRange,
	}, nil
}

// AppendRow appends row after the last non-empty row of the range.
func (c *Client) AppendRow(ctx context.Context, row []any) error {
	values := &gsheets.ValueRange{Values: [][]any{row}}

	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, c.appendRange, values).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	return nil
}
